package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/poseidon-capital/poseidon-api/internal/api/middleware"
	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

// CurrentPrincipal extracts the principal installed by the Auth middleware.
// This is the collaborator interface exposed to the rest of the application:
// consumers read the principal, they never mutate or replace it.
func CurrentPrincipal(c echo.Context) (*domain.Principal, bool) {
	principal, ok := c.Get(middleware.PrincipalKey).(*domain.Principal)
	return principal, ok && principal != nil
}

// requirePrincipal fast-fails a handler that ran without the Auth middleware
// installing a principal. Presence of the principal proves the middleware ran.
func requirePrincipal(c echo.Context) (*domain.Principal, error) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
