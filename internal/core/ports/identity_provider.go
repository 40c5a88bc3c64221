package ports

import (
	"context"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

// IdentityProvider completes the delegated-authorization handshake with an
// external provider. Exchange resolves the full network round trip before
// returning; no local state is mutated until it has succeeded.
type IdentityProvider interface {
	// AuthCodeURL returns the provider URL the user agent is redirected to,
	// bound to the given anti-forgery state nonce.
	AuthCodeURL(state string) string
	// Exchange trades the callback code for the provider's view of the user.
	// A profile missing the mandatory external id is a protocol violation and
	// yields domain.ErrIdentityProvider.
	Exchange(ctx context.Context, code string) (domain.ExternalProfile, error)
}

// StateStore issues and consumes single-use anti-forgery state nonces for the
// delegated-authorization redirect.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	// Consume reports whether the state was previously issued and not yet
	// used; a consumed state never validates twice.
	Consume(ctx context.Context, state string) (bool, error)
}

// TokenDenylist records revoked session token ids until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttlSeconds int64) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
