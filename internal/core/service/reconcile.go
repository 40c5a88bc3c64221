package service

import (
	"context"
	"errors"
	"time"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

// ReconcileExternal maps a provider profile to a local account.
//
// An account already linked to the external id is returned unchanged: provider
// attributes never overwrite local state on subsequent logins, so a
// provider-side profile edit cannot silently alter a local role or name. A
// never-seen external id gets a fresh account with the least-privileged role
// and no usable password.
//
// The find-or-create sequence is race-tolerant: when two first-time logins for
// the same external id collide, the storage-level unique index rejects the
// second insert and the loser re-fetches the winner's account, so both callers
// end up with the same account id.
func (s *AuthService) ReconcileExternal(ctx context.Context, profile domain.ExternalProfile) (*domain.Account, error) {
	if profile.ID == "" {
		// Protocol violation: the provider did not supply the one
		// mandatory field.
		return nil, domain.ErrIdentityProvider
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	account, err := s.accounts.FindByExternalID(ctx, profile.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	name := profile.DisplayName()
	now := time.Now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		Username:   name,
		FullName:   name,
		Role:       domain.RoleUser,
		ExternalID: profile.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err == nil {
		s.record(domain.AuditEvent{
			Kind:      domain.AuditAccountCreated,
			Username:  created.Username,
			AccountID: created.ID,
			Channel:   "oauth",
		})
		return created, nil
	}
	if !errors.Is(err, domain.ErrAccountConflict) {
		return nil, err
	}

	// Lost the creation race; the winner's account is authoritative.
	account, err = s.accounts.FindByExternalID(ctx, profile.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	// The conflict was on username, not external id: the provider login name
	// collides with an unrelated local account. Qualify the username with the
	// external id, which is unique by construction.
	created, err = s.accounts.Create(ctx, &domain.Account{
		Username:   name + "-" + profile.ID,
		FullName:   name,
		Role:       domain.RoleUser,
		ExternalID: profile.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountConflict) {
			return s.accounts.FindByExternalID(ctx, profile.ID)
		}
		return nil, err
	}

	s.record(domain.AuditEvent{
		Kind:      domain.AuditAccountCreated,
		Username:  created.Username,
		AccountID: created.ID,
		Channel:   "oauth",
	})
	return created, nil
}
