package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// SettingsRepository persists the AuthSettings singleton.
type SettingsRepository interface {
	// GetOrCreate returns the singleton, persisting the defaults on first
	// access. Idempotent under concurrent callers.
	GetOrCreate(ctx context.Context) (*domain.AuthSettings, error)
	Update(ctx context.Context, settings *domain.AuthSettings) (*domain.AuthSettings, error)
}
