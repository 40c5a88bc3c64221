package ports

import (
	"context"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, fullName string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Principal, error)
	LoginExternal(ctx context.Context, profile domain.ExternalProfile) (string, *domain.Principal, error)
	Logout(ctx context.Context, token string) error
}

// AccountService covers account administration: listing, inspection and
// profile updates by an administrator or by the account owner.
type AccountService interface {
	List(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, update AccountUpdate) (*domain.Account, error)
}

// AccountUpdate carries the mutable account fields. Nil pointers leave the
// corresponding field untouched.
type AccountUpdate struct {
	FullName *string
	Password *string
	Role     *string
}
