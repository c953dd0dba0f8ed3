package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
	"github.com/openalgo/auth-system/internal/pkg/token"
)

// GoogleAuthService drives the external login flow: gate on settings, issue a
// single-use state nonce, exchange the callback code for a verified identity,
// resolve or create the local user, and issue a session token.
type GoogleAuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	settings ports.SettingsRepository
	provider ports.IdentityProvider
	states   ports.StateStore
	tokens   *token.Service
	logger   zerolog.Logger
}

func NewGoogleAuthService(users ports.UserRepository, roles ports.RoleRepository, settings ports.SettingsRepository, provider ports.IdentityProvider, states ports.StateStore, tokens *token.Service, logger zerolog.Logger) *GoogleAuthService {
	return &GoogleAuthService{
		users:    users,
		roles:    roles,
		settings: settings,
		provider: provider,
		states:   states,
		tokens:   tokens,
		logger:   logger,
	}
}

// LoginURL builds the authorization redirect. Fails when Google auth is
// disabled in the settings row.
func (s *GoogleAuthService) LoginURL(ctx context.Context) (string, error) {
	creds, err := s.credentials(ctx)
	if err != nil {
		return "", err
	}

	state, err := newState()
	if err != nil {
		return "", err
	}
	if err := s.states.Save(ctx, state); err != nil {
		return "", err
	}

	return s.provider.AuthCodeURL(ctx, creds, state)
}

// Callback finishes the login attempt. Any failing step yields an
// authentication failure; no partial user record is committed.
func (s *GoogleAuthService) Callback(ctx context.Context, state, code string) (string, *domain.User, error) {
	creds, err := s.credentials(ctx)
	if err != nil {
		return "", nil, err
	}

	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown state", domain.ErrExternalAuth)
	}

	identity, err := s.provider.Exchange(ctx, creds, code)
	if err != nil {
		s.logger.Warn().Err(err).Msg("code exchange failed")
		return "", nil, fmt.Errorf("%w: %v", domain.ErrExternalAuth, err)
	}
	if identity.Email == "" {
		return "", nil, fmt.Errorf("%w: identity without email", domain.ErrExternalAuth)
	}

	user, err := s.resolveUser(ctx, identity.Email)
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: account disabled", domain.ErrExternalAuth)
	}

	signed, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("external login completed")
	return signed, user, nil
}

// resolveUser finds the account matching the verified email, creating one
// with the default user role and an empty password hash when absent.
func (s *GoogleAuthService) resolveUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if errors.Is(err, domain.ErrRoleNotFound) {
		if err := s.roles.EnsureCanonical(ctx); err != nil {
			return nil, err
		}
		role, err = s.roles.FindByName(ctx, domain.RoleUser)
	}
	if err != nil {
		return nil, err
	}

	username, err := s.uniqueUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:     email,
		Username:  username,
		IsActive:  true,
		RoleID:    role.ID,
		RoleName:  role.Name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// Lost a race for the same email: the existing account wins.
		return s.users.FindByEmail(ctx, email)
	}
	return created, err
}

// uniqueUsername derives a username from the email local-part, appending an
// increasing numeric suffix until it no longer collides: name, name1, name2.
func (s *GoogleAuthService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		base = email[:i]
	}
	if base == "" {
		base = "user"
	}

	for i := 0; ; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		taken, err := s.users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func (s *GoogleAuthService) credentials(ctx context.Context) (ports.OAuthCredentials, error) {
	settings, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return ports.OAuthCredentials{}, err
	}
	if !settings.GoogleAuthEnabled {
		return ports.OAuthCredentials{}, domain.ErrAuthMethodDisabled
	}
	return ports.OAuthCredentials{
		ClientID:     settings.GoogleClientID,
		ClientSecret: settings.GoogleClientSecret,
	}, nil
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
