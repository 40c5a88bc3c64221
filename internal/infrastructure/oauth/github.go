// Package oauth adapts the delegated-authorization handshake to the
// ports.IdentityProvider contract. The provider's attribute payload is treated
// as untrusted input: only the stable user id and the login/name fields are
// ever read from it.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

const (
	defaultUserURL   = "https://api.github.com/user"
	handshakeTimeout = 10 * time.Second
)

// Config carries the provider registration. AuthURL, TokenURL and UserURL
// default to GitHub's endpoints and are overridable for tests.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserURL      string
	Timeout      time.Duration
}

// GitHubProvider completes the auth-code flow against GitHub.
type GitHubProvider struct {
	cfg     *oauth2.Config
	userURL string
	timeout time.Duration
}

func NewGitHubProvider(cfg Config) *GitHubProvider {
	endpoint := github.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userURL := cfg.UserURL
	if userURL == "" {
		userURL = defaultUserURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = handshakeTimeout
	}
	return &GitHubProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user"},
			Endpoint:     endpoint,
		},
		userURL: userURL,
		timeout: timeout,
	}
}

// AuthCodeURL returns the provider authorization URL bound to the state nonce.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// githubUser is the subset of the provider's user payload the adapter reads.
type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

// Exchange trades the callback code for a token, fetches the user payload and
// extracts the external profile. The whole round trip runs under one bounded
// deadline; on timeout the login attempt fails and the user may simply retry,
// since no local state has been touched yet.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (domain.ExternalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ExternalProfile{}, ctx.Err()
		}
		return domain.ExternalProfile{}, fmt.Errorf("%w: code exchange failed", domain.ErrIdentityProvider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.cfg.Client(ctx, token).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ExternalProfile{}, ctx.Err()
		}
		return domain.ExternalProfile{}, fmt.Errorf("%w: user fetch failed", domain.ErrIdentityProvider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ExternalProfile{}, fmt.Errorf("%w: user endpoint returned %d", domain.ErrIdentityProvider, resp.StatusCode)
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.ExternalProfile{}, fmt.Errorf("%w: malformed user payload", domain.ErrIdentityProvider)
	}
	if user.ID == 0 {
		// The one mandatory attribute is missing.
		return domain.ExternalProfile{}, fmt.Errorf("%w: user id missing", domain.ErrIdentityProvider)
	}

	return domain.ExternalProfile{
		ID:    strconv.FormatInt(user.ID, 10),
		Login: user.Login,
		Name:  user.Name,
	}, nil
}
