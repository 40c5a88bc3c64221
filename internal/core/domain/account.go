package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrAccountConflict = errors.New("account creation conflict")
var ErrIdentityProvider = errors.New("identity provider error")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("not authenticated")

// ValidRole reports whether role belongs to the fixed role vocabulary.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Account is the durable local identity record. It is the single source of
// truth for authorization decisions: Role is only ever read from here, never
// from anything an external identity provider reports.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`
	Role         string    `json:"role"`
	ExternalID   string    `json:"external_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLocalCredentials reports whether local username/password login is usable
// for this account. Accounts created through the delegated path carry no hash.
func (a *Account) HasLocalCredentials() bool {
	return a.PasswordHash != ""
}

// ExternalProfile is the attribute set extracted from a completed delegated
// authorization handshake. The provider's attribute bag is untrusted; only
// these fields are ever read from it.
type ExternalProfile struct {
	// ID is the provider-scoped stable identifier, the one mandatory field.
	ID string
	// Login is the provider display/login name; may be empty.
	Login string
	// Name is the human-readable name; may be empty.
	Name string
}

// DisplayName returns the best available name for account creation, falling
// back to the external id when the provider exposes no public name.
func (p ExternalProfile) DisplayName() string {
	if p.Login != "" {
		return p.Login
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
