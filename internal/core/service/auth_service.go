package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
	"github.com/openalgo/auth-system/internal/pkg/password"
	"github.com/openalgo/auth-system/internal/pkg/token"
)

// AuthService implements credential authentication, token resolution and the
// registration/bootstrap flow.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	settings ports.SettingsRepository
	tokens   *token.Service
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, settings ports.SettingsRepository, tokens *token.Service, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, settings: settings, tokens: tokens, logger: logger}
}

// Register creates an account via the self-service flow. The first user ever
// registered wins the bootstrap claim and becomes superadmin; everyone after
// gets the user role.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	settings, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.RegularAuthEnabled {
		return nil, domain.ErrAuthMethodDisabled
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	claimed, err := s.users.ClaimBootstrap(ctx)
	if err != nil {
		return nil, err
	}

	roleName := domain.RoleUser
	if claimed {
		roleName = domain.RoleSuperadmin
		if err := s.roles.EnsureCanonical(ctx); err != nil {
			_ = s.users.ReleaseBootstrap(ctx)
			return nil, err
		}
	}

	role, err := s.roleByName(ctx, roleName)
	if err != nil {
		if claimed {
			_ = s.users.ReleaseBootstrap(ctx)
		}
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		IsActive:     true,
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// Give the claim back so a later registration can still bootstrap.
		if claimed {
			_ = s.users.ReleaseBootstrap(ctx)
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", created.RoleName).Msg("user registered")
	return created, nil
}

// Login authenticates a username/password pair and issues a bearer token.
// Unknown user, wrong password and an inactive account all surface as
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (string, *domain.User, error) {
	settings, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return "", nil, err
	}
	if !settings.RegularAuthEnabled {
		return "", nil, domain.ErrAuthMethodDisabled
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	// An empty stored hash (external-login account) never verifies.
	if !user.IsActive || !password.Verify(plaintext, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// ResolveToken verifies a bearer token and loads the user it names. A token
// whose subject no longer resolves to an active user is treated as invalid.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*domain.User, error) {
	subject, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) roleByName(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if errors.Is(err, domain.ErrRoleNotFound) {
		if err := s.roles.EnsureCanonical(ctx); err != nil {
			return nil, err
		}
		return s.roles.FindByName(ctx, name)
	}
	return role, err
}
