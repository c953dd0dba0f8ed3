package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// UpdateSettingsInput is a partial field set; nil fields keep their stored
// value. Validation runs against the merged result.
type UpdateSettingsInput struct {
	RegularAuthEnabled *bool
	GoogleAuthEnabled  *bool
	GoogleClientID     *string
	GoogleClientSecret *string
}

// SettingsService is the superadmin-only auth settings surface.
type SettingsService interface {
	Get(ctx context.Context, actor *domain.User) (*domain.AuthSettings, error)
	Update(ctx context.Context, actor *domain.User, input UpdateSettingsInput) (*domain.AuthSettings, error)
}
