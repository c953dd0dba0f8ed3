package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
	"github.com/openalgo/auth-system/internal/pkg/token"
)

func newAuthService(users *stubUserRepo, roles *stubRoleRepo, settings *stubSettingsRepo) *AuthService {
	return NewAuthService(users, roles, settings, token.NewService("test-secret", time.Hour), testLogger())
}

func TestAuthService_Register_FirstUserBecomesSuperadmin(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := newAuthService(users, roles, newStubSettingsRepo())

	first, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if first.RoleName != domain.RoleSuperadmin {
		t.Fatalf("expected first user to be superadmin, got %s", first.RoleName)
	}
	if first.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(first.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	second, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "pass456",
	})
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if second.RoleName != domain.RoleUser {
		t.Fatalf("expected second user to get user role, got %s", second.RoleName)
	}
}

func TestAuthService_Register_ReleasesBootstrapOnFailedInsert(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := newAuthService(users, roles, newStubSettingsRepo())

	users.createErr = errors.New("write failed")
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "pass123",
	}); err == nil {
		t.Fatalf("expected register to fail")
	}

	users.createErr = nil
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "pass456",
	})
	if err != nil {
		t.Fatalf("register after release failed: %v", err)
	}
	if user.RoleName != domain.RoleSuperadmin {
		t.Fatalf("expected bootstrap claim to be released, got role %s", user.RoleName)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubRoleRepo(), newStubSettingsRepo())

	input := ports.RegisterInput{Email: "bob@example.com", Username: "bob", Password: "pass"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_DisabledRegularAuth(t *testing.T) {
	settings := newStubSettingsRepo()
	settings.settings = &domain.AuthSettings{
		ID:                 1,
		GoogleAuthEnabled:  true,
		GoogleClientID:     "cid",
		GoogleClientSecret: "secret",
	}
	svc := newAuthService(newStubUserRepo(), newStubRoleRepo(), settings)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "pass",
	})
	if !errors.Is(err, domain.ErrAuthMethodDisabled) {
		t.Fatalf("expected ErrAuthMethodDisabled, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := newAuthService(users, roles, newStubSettingsRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Username: "carol",
		Password: "s3cret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	resolved, err := svc.ResolveToken(context.Background(), signed)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Username != "carol" {
		t.Fatalf("resolved wrong user: %s", resolved.Username)
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := newAuthService(users, roles, newStubSettingsRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "dave@example.com",
		Username: "dave",
		Password: "goodpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost", "goodpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := newAuthService(users, roles, newStubSettingsRepo())

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "eve@example.com",
		Username: "eve",
		Password: "pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored := users.users[created.ID]
	stored.IsActive = false

	if _, _, err := svc.Login(context.Background(), "eve", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestAuthService_Login_DisabledRegularAuth(t *testing.T) {
	settings := newStubSettingsRepo()
	settings.settings = &domain.AuthSettings{
		ID:                 1,
		GoogleAuthEnabled:  true,
		GoogleClientID:     "cid",
		GoogleClientSecret: "secret",
	}
	svc := newAuthService(newStubUserRepo(), newStubRoleRepo(), settings)

	if _, _, err := svc.Login(context.Background(), "anyone", "pass"); !errors.Is(err, domain.ErrAuthMethodDisabled) {
		t.Fatalf("expected ErrAuthMethodDisabled, got %v", err)
	}
}

func TestAuthService_ResolveToken_Invalid(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := newAuthService(users, roles, newStubSettingsRepo())

	if _, err := svc.ResolveToken(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// A valid token whose subject was deleted afterwards is also invalid.
	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "gone@example.com",
		Username: "gone",
		Password: "pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	signed, _, err := svc.Login(context.Background(), "gone", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	delete(users.users, created.ID)

	if _, err := svc.ResolveToken(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for deleted subject, got %v", err)
	}
}
