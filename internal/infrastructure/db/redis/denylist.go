package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked session token ids until their natural expiry,
// giving logout real semantics for bearer tokens. Key format: revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks the token id as revoked for ttlSeconds. The TTL mirrors the
// token's remaining lifetime so the denylist never outgrows live tokens.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttlSeconds int64) error {
	if ttlSeconds <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(jti), "1", time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(jti string) string {
	return "revoked:" + jti
}
