package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/poseidon-capital/poseidon-api/internal/api/metrics"
	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
	"github.com/poseidon-capital/poseidon-api/pkg/logger"
)

// RequireRole enforces the authorization gate for a protected route. A
// missing principal and an insufficient role both render the same fixed
// forbidden response; the two cases are only told apart in logs and metrics.
// A denial leaves the session principal untouched.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Get(PrincipalKey).(*domain.Principal)
			if err := domain.RequireRole(principal, role); err != nil {
				reason := "insufficient_role"
				log := logger.Get()
				evt := log.Warn().
					Str("path", c.Path()).
					Str("required_role", role)
				if principal == nil {
					reason = "unauthenticated"
				} else {
					evt = evt.Str("username", principal.Username).Str("role", principal.Role)
				}
				evt.Str("reason", reason).Msg("access denied")
				metrics.ForbiddenTotal.WithLabelValues(reason).Inc()

				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
