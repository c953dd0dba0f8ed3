package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// RoleRepository defines persistence for the role reference data.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	// EnsureCanonical idempotently creates the superadmin, admin and user
	// rows when absent.
	EnsureCanonical(ctx context.Context) error
}
