package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/poseidon-capital/poseidon-api/internal/api/metrics"
	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
	"github.com/poseidon-capital/poseidon-api/internal/core/ports"
)

// OAuthHandler drives the delegated-authorization login flow: redirect out
// with a single-use state nonce, then reconcile the callback into a local
// principal. The token issued at the end carries the local account's role,
// never anything the provider asserted.
type OAuthHandler struct {
	authService ports.AuthService
	provider    ports.IdentityProvider
	states      ports.StateStore
}

func NewOAuthHandler(authService ports.AuthService, provider ports.IdentityProvider, states ports.StateStore) *OAuthHandler {
	return &OAuthHandler{authService: authService, provider: provider, states: states}
}

// Authorize redirects the user agent to the identity provider.
//
// @Summary      Start delegated login
// @Tags         auth
// @Success      302
// @Failure      500  {object}  map[string]string
// @Router       /auth/oauth/github [get]
func (h *OAuthHandler) Authorize(c echo.Context) error {
	state, err := h.states.Issue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback completes the delegated login. Any failure — provider error
// parameter, forged or replayed state, failed handshake, missing external id —
// collapses to the same generic access-denied outcome.
//
// @Summary      Delegated login callback
// @Tags         auth
// @Produce      json
// @Param        code   query     string  true   "Authorization code"
// @Param        state  query     string  true   "Anti-forgery state"
// @Success      200    {object}  authResponse
// @Failure      401    {object}  map[string]string
// @Router       /auth/oauth/github/callback [get]
func (h *OAuthHandler) Callback(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	if c.QueryParam("error") != "" {
		return h.deny(start, domain.ErrIdentityProvider)
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return h.deny(start, domain.ErrIdentityProvider)
	}

	ok, err := h.states.Consume(ctx, state)
	if err != nil {
		return err
	}
	if !ok {
		return h.deny(start, domain.ErrIdentityProvider)
	}

	profile, err := h.provider.Exchange(ctx, code)
	if err != nil {
		return h.deny(start, err)
	}

	token, principal, err := h.authService.LoginExternal(ctx, profile)
	if err != nil {
		return h.deny(start, err)
	}

	metrics.OAuthHandshakeDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	metrics.LoginsTotal.WithLabelValues("oauth", "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, Principal: principal})
}

func (h *OAuthHandler) deny(start time.Time, err error) error {
	metrics.OAuthHandshakeDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
	metrics.LoginsTotal.WithLabelValues("oauth", "failure").Inc()
	return err
}
