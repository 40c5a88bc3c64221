package ports

import (
	"context"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
//
// Create must enforce uniqueness of username and external id at the storage
// layer and report a violation as domain.ErrAccountConflict; a read-then-write
// check at the edge is not sufficient under concurrent logins.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
