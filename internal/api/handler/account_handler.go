package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/poseidon-capital/poseidon-api/internal/core/ports"
)

// AccountHandler exposes account administration and self-service profile
// routes. Role gating happens in the router via the RequireRole middleware;
// the handlers only assume an installed principal.
type AccountHandler struct {
	accountService ports.AccountService
}

func NewAccountHandler(accountService ports.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type updateAccountRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=125"`
	Password *string `json:"password" validate:"omitempty,min=8,max=125"`
	Role     *string `json:"role" validate:"omitempty,oneof=ROLE_USER ROLE_ADMIN"`
}

// List returns every account, credentials excluded.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   domain.Account
// @Failure      403  {object}  map[string]string
// @Router       /admin/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accountService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Get returns one account by id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.accountService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update applies an administrator update to an account: name, password or
// role within the fixed vocabulary.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accountService.Update(c.Request().Context(), c.Param("id"), ports.AccountUpdate{
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Me returns the authenticated caller's own account.
//
// @Summary      Get own account
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	account, err := h.accountService.Get(c.Request().Context(), principal.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateMe lets the account owner change their own name or password. A role
// change through this route is rejected regardless of the caller's role.
//
// @Summary      Update own account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /me [put]
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Role != nil {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}

	account, err := h.accountService.Update(c.Request().Context(), principal.AccountID, ports.AccountUpdate{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}
