package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrIdentityProvider, http.StatusUnauthorized, "access denied"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrAccountNotFound, http.StatusNotFound, "account not found"},
		{domain.ErrAccountExists, http.StatusConflict, "account already exists"},
		{context.DeadlineExceeded, http.StatusServiceUnavailable, "temporarily unavailable, please retry"},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.wantCode || msg != tc.wantMsg {
			t.Fatalf("%v rendered (%d, %q), want (%d, %q)", tc.err, code, msg, tc.wantCode, tc.wantMsg)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	code, msg := renderError(t, fmt.Errorf("%w: user id missing", domain.ErrIdentityProvider))
	if code != http.StatusUnauthorized || msg != "access denied" {
		t.Fatalf("wrapped provider error rendered (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("echo error rendered (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorHidesDetail(t *testing.T) {
	code, msg := renderError(t, errors.New("pq: connection refused on host db-internal"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
