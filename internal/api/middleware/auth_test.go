package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
)

// stubAuth resolves a single known token to a fixed user.
type stubAuth struct {
	token string
	user  *domain.User
}

func (s *stubAuth) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubAuth) ResolveToken(_ context.Context, tokenString string) (*domain.User, error) {
	if tokenString == s.token {
		return s.user, nil
	}
	return nil, domain.ErrInvalidToken
}

func runAuth(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	auth := &stubAuth{token: "good-token", user: &domain.User{ID: 7, Username: "alice", RoleName: domain.RoleUser, IsActive: true}}
	handler := Auth(auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_PublicPathBypasses(t *testing.T) {
	for _, path := range []string{"/", "/login", "/register", "/health/ready", "/docs/index.html", "/auth/google/callback"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec, _, err := runAuth(t, req)
		if err != nil {
			t.Fatalf("path %s: unexpected error %v", path, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("path %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestAuth_ProtectedPathRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)

	_, _, err := runAuth(t, req)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_BrowserRedirectsToLogin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, "text/html")

	rec, _, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestAuth_CookieToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer good-token"})

	rec, c, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user, ok := c.Get(ContextUserKey).(*domain.User)
	if !ok || user.Username != "alice" {
		t.Fatalf("expected resolved user in context, got %v", c.Get(ContextUserKey))
	}
}

func TestAuth_AuthorizationHeaderToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rec, _, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer forged"})

	_, _, err := runAuth(t, req)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedCookieValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "good-token"})

	_, _, err := runAuth(t, req)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for cookie without Bearer prefix, got %v", err)
	}
}

func TestIsPublicPath(t *testing.T) {
	cases := map[string]bool{
		"/":                true,
		"/login":           true,
		"/loginx":          false,
		"/dashboard":       false,
		"/users":           false,
		"/health":          true,
		"/health/ready":    true,
		"/docs/index.html": true,
		"/settings":        false,
	}
	for path, want := range cases {
		if got := isPublicPath(path); got != want {
			t.Fatalf("isPublicPath(%q) = %v, want %v", path, got, want)
		}
	}
}
