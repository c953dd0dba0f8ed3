package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// CreateUserInput carries an admin-initiated user creation. RoleID nil means
// the default user role.
type CreateUserInput struct {
	Email    string
	Username string
	Password string
	RoleID   *int64
}

// UpdateUserInput is a partial field set; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
	IsActive *bool
	RoleID   *int64
}

// UserService is the admin-gated user management surface. Every operation
// takes the acting user and enforces the authorization matrix internally.
type UserService interface {
	ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error)
	GetUser(ctx context.Context, actor *domain.User, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, id int64, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id int64) error
	ListRoles(ctx context.Context, actor *domain.User) ([]domain.Role, error)
}
