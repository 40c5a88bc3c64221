package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
	"github.com/poseidon-capital/poseidon-api/internal/core/ports"
)

const defaultStoreTimeout = 5 * time.Second

// AuthService implements local signup, local login, delegated login and
// logout. Both login channels converge on the same principal and token shape,
// with the role always copied from the local account row.
type AuthService struct {
	accounts     ports.AccountRepository
	unique       *UniquenessChecker
	audit        ports.AuditSink
	denylist     ports.TokenDenylist
	jwtSecret    string
	tokenTTL     time.Duration
	storeTimeout time.Duration
}

func NewAuthService(
	accounts ports.AccountRepository,
	unique *UniquenessChecker,
	audit ports.AuditSink,
	denylist ports.TokenDenylist,
	jwtSecret string,
	tokenTTL time.Duration,
	storeTimeout time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &AuthService{
		accounts:     accounts,
		unique:       unique,
		audit:        audit,
		denylist:     denylist,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		storeTimeout: storeTimeout,
	}
}

// Register creates a local account with a freshly hashed password. Self-signup
// always yields the least-privileged role; only an administrator can raise it.
func (s *AuthService) Register(ctx context.Context, username, password, fullName string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	unique, err := s.unique.IsUnique(ctx, "account", "username", username)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, domain.ErrAccountExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		// The unique index closed the check-then-insert window.
		if errors.Is(err, domain.ErrAccountConflict) {
			return nil, domain.ErrAccountExists
		}
		return nil, err
	}

	s.record(domain.AuditEvent{
		Kind:      domain.AuditAccountCreated,
		Username:  created.Username,
		AccountID: created.ID,
		Channel:   "local",
	})
	return created, nil
}

// Login authenticates a local username/password pair. Every failure, whether
// an unknown username, a wrong password or a password-less delegated account,
// collapses to ErrInvalidCredentials and costs one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Principal, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			burnVerification(password)
			s.record(domain.AuditEvent{Kind: domain.AuditLoginFailure, Username: username, Channel: "local"})
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(password, account.PasswordHash) {
		s.record(domain.AuditEvent{Kind: domain.AuditLoginFailure, Username: username, AccountID: account.ID, Channel: "local"})
		return "", nil, domain.ErrInvalidCredentials
	}

	principal := domain.NewPrincipal(account)
	token, err := s.issueToken(principal)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEvent{Kind: domain.AuditLoginSuccess, Username: account.Username, AccountID: account.ID, Channel: "local"})
	return token, principal, nil
}

// LoginExternal completes a delegated login: the provider profile is
// reconciled to a local account and the session token is issued from that
// account, replacing whatever identity the provider asserted.
func (s *AuthService) LoginExternal(ctx context.Context, profile domain.ExternalProfile) (string, *domain.Principal, error) {
	account, err := s.ReconcileExternal(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	principal := domain.NewPrincipal(account)
	token, err := s.issueToken(principal)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEvent{Kind: domain.AuditOAuthLogin, Username: account.Username, AccountID: account.ID, Channel: "oauth"})
	return token, principal, nil
}

// Logout revokes the session token. It is idempotent: an already-revoked,
// expired or malformed token is not an error, there is simply nothing to do.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}

	ttl := int64(s.tokenTTL / time.Second)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = int64(remaining/time.Second) + 1
		}
	}

	if err := s.denylist.Revoke(ctx, jti, ttl); err != nil {
		return err
	}

	username, _ := claims["username"].(string)
	s.record(domain.AuditEvent{Kind: domain.AuditLogout, Username: username})
	return nil
}

func (s *AuthService) issueToken(p *domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"jti":      uuid.NewString(),
		"sub":      p.AccountID,
		"username": p.Username,
		"role":     p.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) record(event domain.AuditEvent) {
	recordAudit(s.audit, event)
}

func recordAudit(sink ports.AuditSink, event domain.AuditEvent) {
	if sink == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	sink.Enqueue(event)
}
