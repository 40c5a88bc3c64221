package service

import (
	"context"
	"fmt"
	"sync"
)

// ExistsFunc reports whether any committed record of one entity kind has the
// given value in one column. Each registered (kind, column) pair binds its own
// typed query; there is no reflective query construction.
type ExistsFunc func(ctx context.Context, value string) (bool, error)

type uniqueKey struct {
	kind   string
	column string
}

// UniquenessChecker answers "is value V unique in column C of entity kind E"
// during field validation. Lookups always read current committed state: the
// check gates an insert in the same validation pass, so caching would defeat
// it. It deliberately does not close the check-then-insert race; the insert
// path enforces the constraint with a storage-level unique index.
type UniquenessChecker struct {
	mu      sync.RWMutex
	lookups map[uniqueKey]ExistsFunc
}

func NewUniquenessChecker() *UniquenessChecker {
	return &UniquenessChecker{lookups: make(map[uniqueKey]ExistsFunc)}
}

// Register binds the exists-query for one entity kind and column. Later
// registrations for the same pair replace earlier ones.
func (c *UniquenessChecker) Register(kind, column string, fn ExistsFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups[uniqueKey{kind: kind, column: column}] = fn
}

// IsUnique reports whether value is absent from the given column. An empty
// value is always unique: absence never collides. An unregistered
// (kind, column) pair is a wiring mistake and yields an error.
func (c *UniquenessChecker) IsUnique(ctx context.Context, kind, column, value string) (bool, error) {
	if value == "" {
		return true, nil
	}

	c.mu.RLock()
	fn, ok := c.lookups[uniqueKey{kind: kind, column: column}]
	c.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("unique: no lookup registered for %s.%s", kind, column)
	}

	exists, err := fn(ctx, value)
	if err != nil {
		return false, fmt.Errorf("unique lookup %s.%s: %w", kind, column, err)
	}
	return !exists, nil
}
