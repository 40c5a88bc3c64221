package domain

// Principal is the transient, request-scoped authenticated identity. It is
// derived from an Account at login time and read-only afterwards; it is
// threaded through the request context rather than stored in any ambient
// mutable state.
type Principal struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Authorities returns the authority tokens granted to the principal. With the
// fixed role vocabulary this is the role string itself, or empty when no role
// could be established.
func (p *Principal) Authorities() []string {
	if p == nil || p.Role == "" {
		return nil
	}
	return []string{p.Role}
}

// NewPrincipal builds the session principal for an account. The role is copied
// verbatim from the account row regardless of which channel authenticated the
// request.
func NewPrincipal(a *Account) *Principal {
	return &Principal{
		AccountID: a.ID,
		Username:  a.Username,
		Role:      a.Role,
	}
}

// RequireRole is the authorization gate. A nil principal (unauthenticated) and
// a role mismatch both produce ErrForbidden so the caller-visible outcome does
// not reveal authorization structure; callers that need the distinction for
// logging can test the principal for nil themselves.
func RequireRole(p *Principal, role string) error {
	if p == nil {
		return ErrForbidden
	}
	if p.Role != role {
		return ErrForbidden
	}
	return nil
}
