package service

import (
	"context"
	"time"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
	"github.com/poseidon-capital/poseidon-api/internal/core/ports"
)

// AccountService implements account administration: listing, inspection and
// profile updates. Authorization is the caller's concern; the HTTP layer
// gates these operations on ROLE_ADMIN or on account ownership.
type AccountService struct {
	accounts     ports.AccountRepository
	audit        ports.AuditSink
	storeTimeout time.Duration
}

func NewAccountService(accounts ports.AccountRepository, audit ports.AuditSink, storeTimeout time.Duration) *AccountService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &AccountService{accounts: accounts, audit: audit, storeTimeout: storeTimeout}
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.accounts.FindAll(ctx)
}

func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, domain.ErrAccountNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.accounts.FindByID(ctx, id)
}

// Update applies a partial update. A password change is re-hashed, a role
// change is constrained to the fixed vocabulary, and every change bumps
// UpdatedAt. The surrogate id, username and external id are immutable here.
func (s *AccountService) Update(ctx context.Context, id string, update ports.AccountUpdate) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roleChanged := false
	if update.Role != nil && *update.Role != account.Role {
		if !domain.ValidRole(*update.Role) {
			return nil, domain.ErrForbidden
		}
		account.Role = *update.Role
		roleChanged = true
	}
	if update.FullName != nil {
		account.FullName = *update.FullName
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, domain.ErrInvalidCredentials
		}
		hash, err := HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	account.UpdatedAt = time.Now().UTC()

	saved, err := s.accounts.Save(ctx, account)
	if err != nil {
		return nil, err
	}

	kind := domain.AuditAccountUpdated
	if roleChanged {
		kind = domain.AuditRoleChanged
	}
	recordAudit(s.audit, domain.AuditEvent{Kind: kind, Username: saved.Username, AccountID: saved.ID})
	return saved, nil
}
