package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

type stubProvider struct {
	authCodeURLFn func(state string) string
	exchangeFn    func(ctx context.Context, code string) (domain.ExternalProfile, error)
}

func (p *stubProvider) AuthCodeURL(state string) string {
	return p.authCodeURLFn(state)
}

func (p *stubProvider) Exchange(ctx context.Context, code string) (domain.ExternalProfile, error) {
	return p.exchangeFn(ctx, code)
}

type stubStateStore struct {
	issued map[string]bool
}

func newStubStateStore(states ...string) *stubStateStore {
	s := &stubStateStore{issued: make(map[string]bool)}
	for _, state := range states {
		s.issued[state] = true
	}
	return s
}

func (s *stubStateStore) Issue(_ context.Context) (string, error) {
	s.issued["issued-state"] = true
	return "issued-state", nil
}

func (s *stubStateStore) Consume(_ context.Context, state string) (bool, error) {
	if !s.issued[state] {
		return false, nil
	}
	delete(s.issued, state)
	return true, nil
}

func TestOAuthHandler_Authorize(t *testing.T) {
	e := newTestEcho()
	provider := &stubProvider{
		authCodeURLFn: func(state string) string {
			return "https://provider.example/authorize?state=" + state
		},
	}
	h := NewOAuthHandler(&stubAuthService{}, provider, newStubStateStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Authorize(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "https://provider.example/authorize?state=issued-state" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestOAuthHandler_Callback_Success(t *testing.T) {
	e := newTestEcho()
	provider := &stubProvider{
		exchangeFn: func(_ context.Context, code string) (domain.ExternalProfile, error) {
			if code != "good-code" {
				t.Fatalf("unexpected code: %s", code)
			}
			return domain.ExternalProfile{ID: "gh-1", Login: "octocat"}, nil
		},
	}
	auth := &stubAuthService{
		loginExternalFn: func(_ context.Context, profile domain.ExternalProfile) (string, *domain.Principal, error) {
			if profile.ID != "gh-1" {
				t.Fatalf("unexpected profile: %+v", profile)
			}
			return "token-xyz", &domain.Principal{AccountID: "7", Username: "octocat", Role: domain.RoleUser}, nil
		},
	}
	h := NewOAuthHandler(auth, provider, newStubStateStore("known-state"))

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?code=good-code&state=known-state", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token-xyz" {
		t.Fatalf("unexpected token: %s", resp.Token)
	}
}

func TestOAuthHandler_Callback_UnknownState(t *testing.T) {
	e := newTestEcho()
	h := NewOAuthHandler(&stubAuthService{}, &stubProvider{}, newStubStateStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?code=good-code&state=forged", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
}

func TestOAuthHandler_Callback_StateNeverValidatesTwice(t *testing.T) {
	e := newTestEcho()
	provider := &stubProvider{
		exchangeFn: func(_ context.Context, _ string) (domain.ExternalProfile, error) {
			return domain.ExternalProfile{ID: "gh-1", Login: "octocat"}, nil
		},
	}
	auth := &stubAuthService{
		loginExternalFn: func(_ context.Context, _ domain.ExternalProfile) (string, *domain.Principal, error) {
			return "token-xyz", &domain.Principal{AccountID: "7", Username: "octocat", Role: domain.RoleUser}, nil
		},
	}
	h := NewOAuthHandler(auth, provider, newStubStateStore("once"))

	first := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?code=c&state=once", nil), httptest.NewRecorder())
	if err := h.Callback(first); err != nil {
		t.Fatalf("first callback failed: %v", err)
	}

	second := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?code=c&state=once", nil), httptest.NewRecorder())
	if err := h.Callback(second); !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("replayed state must be rejected, got %v", err)
	}
}

func TestOAuthHandler_Callback_ProviderError(t *testing.T) {
	e := newTestEcho()
	h := NewOAuthHandler(&stubAuthService{}, &stubProvider{}, newStubStateStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); !errors.Is(err, domain.ErrIdentityProvider) {
		t.Fatalf("expected ErrIdentityProvider, got %v", err)
	}
}

func TestOAuthHandler_Callback_MissingParams(t *testing.T) {
	e := newTestEcho()
	h := NewOAuthHandler(&stubAuthService{}, &stubProvider{}, newStubStateStore())

	for _, target := range []string{
		"/auth/oauth/github/callback",
		"/auth/oauth/github/callback?code=only-code",
		"/auth/oauth/github/callback?state=only-state",
	} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		if err := h.Callback(c); !errors.Is(err, domain.ErrIdentityProvider) {
			t.Fatalf("%s: expected ErrIdentityProvider, got %v", target, err)
		}
	}
}
