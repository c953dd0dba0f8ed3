package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
)

// SettingsService guards the AuthSettings singleton. Both read and write are
// superadmin-only; validation runs on the merged result before anything is
// persisted, so a rejected update leaves the stored row untouched.
type SettingsService struct {
	settings ports.SettingsRepository
	logger   zerolog.Logger
}

func NewSettingsService(settings ports.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context, actor *domain.User) (*domain.AuthSettings, error) {
	if !actor.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}
	return s.settings.GetOrCreate(ctx)
}

func (s *SettingsService) Update(ctx context.Context, actor *domain.User, input ports.UpdateSettingsInput) (*domain.AuthSettings, error) {
	if !actor.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}

	current, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	merged := *current
	if input.RegularAuthEnabled != nil {
		merged.RegularAuthEnabled = *input.RegularAuthEnabled
	}
	if input.GoogleAuthEnabled != nil {
		merged.GoogleAuthEnabled = *input.GoogleAuthEnabled
	}
	if input.GoogleClientID != nil {
		merged.GoogleClientID = *input.GoogleClientID
	}
	if input.GoogleClientSecret != nil {
		merged.GoogleClientSecret = *input.GoogleClientSecret
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	merged.UpdatedBy = actor.ID
	merged.UpdatedAt = time.Now().UTC()

	updated, err := s.settings.Update(ctx, &merged)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("actor_id", actor.ID).
		Bool("regular_auth", updated.RegularAuthEnabled).
		Bool("google_auth", updated.GoogleAuthEnabled).
		Msg("auth settings updated")
	return updated, nil
}
