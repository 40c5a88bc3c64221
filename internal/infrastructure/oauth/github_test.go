package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

func newProviderServer(t *testing.T, userPayload string, userStatus int) (*httptest.Server, Config) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"gho_test","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userStatus)
		w.Write([]byte(userPayload))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
		AuthURL:      srv.URL + "/login/oauth/authorize",
		TokenURL:     srv.URL + "/login/oauth/access_token",
		UserURL:      srv.URL + "/user",
		Timeout:      5 * time.Second,
	}
}

func TestGitHubProvider_AuthCodeURL(t *testing.T) {
	_, cfg := newProviderServer(t, "{}", http.StatusOK)
	p := NewGitHubProvider(cfg)

	u := p.AuthCodeURL("state-123")
	if !strings.Contains(u, "state=state-123") {
		t.Fatalf("state missing from authorize URL: %s", u)
	}
	if !strings.Contains(u, "client_id=client-id") {
		t.Fatalf("client id missing from authorize URL: %s", u)
	}
}

func TestGitHubProvider_Exchange_Success(t *testing.T) {
	_, cfg := newProviderServer(t, `{"id":583231,"login":"octocat","name":"The Octocat"}`, http.StatusOK)
	p := NewGitHubProvider(cfg)

	profile, err := p.Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if profile.ID != "583231" {
		t.Fatalf("expected numeric id as string, got %q", profile.ID)
	}
	if profile.Login != "octocat" || profile.Name != "The Octocat" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestGitHubProvider_Exchange_MissingUserID(t *testing.T) {
	_, cfg := newProviderServer(t, `{"login":"octocat"}`, http.StatusOK)
	p := NewGitHubProvider(cfg)

	if _, err := p.Exchange(context.Background(), "good-code"); !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
}

func TestGitHubProvider_Exchange_UserEndpointFailure(t *testing.T) {
	_, cfg := newProviderServer(t, `{"message":"server error"}`, http.StatusInternalServerError)
	p := NewGitHubProvider(cfg)

	if _, err := p.Exchange(context.Background(), "good-code"); !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
}

func TestGitHubProvider_Exchange_TokenEndpointDown(t *testing.T) {
	srv, cfg := newProviderServer(t, "{}", http.StatusOK)
	srv.Close()
	p := NewGitHubProvider(cfg)

	if _, err := p.Exchange(context.Background(), "good-code"); !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
}
