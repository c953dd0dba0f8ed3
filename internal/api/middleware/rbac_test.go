package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openalgo/auth-system/internal/core/domain"
)

func tierContext(user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(ContextUserKey, user)
	}
	return c, rec
}

func TestRequireTier_Allows(t *testing.T) {
	c, rec := tierContext(&domain.User{ID: 1, RoleName: domain.RoleAdmin})

	called := false
	handler := RequireTier(domain.TierAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireTier_SuperadminPassesAdminGate(t *testing.T) {
	c, _ := tierContext(&domain.User{ID: 1, RoleName: domain.RoleSuperadmin})

	handler := RequireTier(domain.TierAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("superadmin should pass the admin gate: %v", err)
	}
}

func TestRequireTier_Forbids(t *testing.T) {
	c, _ := tierContext(&domain.User{ID: 1, RoleName: domain.RoleUser})

	handler := RequireTier(domain.TierAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireTier_AdminCannotPassSuperadminGate(t *testing.T) {
	c, _ := tierContext(&domain.User{ID: 1, RoleName: domain.RoleAdmin})

	handler := RequireTier(domain.TierSuperadmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireTier_MissingUser(t *testing.T) {
	c, _ := tierContext(nil)

	handler := RequireTier(domain.TierAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
