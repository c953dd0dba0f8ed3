package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// UserRepository defines persistence for user records. Implementations must
// return domain.ErrUserExists on email/username uniqueness violations and
// domain.ErrUserNotFound when a lookup misses.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error

	// ClaimBootstrap atomically claims the one-time first-user marker.
	// Exactly one caller ever observes true; everyone else gets false.
	ClaimBootstrap(ctx context.Context) (bool, error)
	// ReleaseBootstrap undoes a claim whose follow-up user insert failed, so
	// a later registration can still bootstrap the superadmin.
	ReleaseBootstrap(ctx context.Context) error
}
