package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openalgo/auth-system/internal/core/domain"
)

func renderError(t *testing.T, err error, accept string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if accept != "" {
		req.Header.Set(echo.HeaderAccept, accept)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrExternalAuth, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAuthMethodDisabled, http.StatusForbidden},
		{domain.ErrUserExists, http.StatusBadRequest},
		{domain.ErrSettingsInvalid, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrRoleNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := renderError(t, tc.err, echo.MIMEApplicationJSON)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%v: invalid body: %v", tc.err, err)
		}
		if resp.Status != tc.code || resp.Detail == "" {
			t.Fatalf("%v: unexpected envelope: %+v", tc.err, resp)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrExternalAuth)
	rec := renderError(t, wrapped, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrapped error, got %d", rec.Code)
	}
}

func TestErrorHandler_BrowserRedirectOn401(t *testing.T) {
	rec := renderError(t, domain.ErrInvalidToken, "text/html")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestErrorHandler_ForbiddenIsNotRedirected(t *testing.T) {
	rec := renderError(t, domain.ErrForbidden, "text/html")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 even for browsers, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec := renderError(t, errors.New("connection reset by peer"), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Detail != "Internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Detail)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
