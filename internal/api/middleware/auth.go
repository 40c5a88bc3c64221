package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
	"github.com/poseidon-capital/poseidon-api/internal/core/ports"
)

// PrincipalKey is the echo context key the authenticated principal is stored
// under. The principal is installed once per request and read-only afterwards.
const PrincipalKey = "principal"

// Auth validates the bearer token, rejects revoked tokens, and installs the
// session principal into the request context. Requests without a usable
// principal are turned away with 401 before reaching any handler.
func Auth(jwtSecret string, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				jti, _ := claims["jti"].(string)
				if jti != "" {
					revoked, err := denylist.IsRevoked(c.Request().Context(), jti)
					if err != nil {
						return err
					}
					if revoked {
						return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
					}
				}
			}

			accountID, _ := claims["sub"].(string)
			username, _ := claims["username"].(string)
			role, _ := claims["role"].(string)

			c.Set(PrincipalKey, &domain.Principal{
				AccountID: accountID,
				Username:  username,
				Role:      role,
			})

			return next(c)
		}
	}
}
