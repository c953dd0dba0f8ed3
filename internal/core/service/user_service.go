package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
	"github.com/openalgo/auth-system/internal/pkg/password"
)

// UserService implements the admin-gated user management operations. The
// authorization matrix is evaluated here, once per operation, so handlers
// stay free of role conditionals.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListRoles(ctx context.Context, actor *domain.User) ([]domain.Role, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.roles.List(ctx)
}

// CreateUser creates an account on behalf of an admin. A non-superadmin
// actor may only assign the user role.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var role *domain.Role
	var err error
	if input.RoleID != nil {
		role, err = s.roles.FindByID(ctx, *input.RoleID)
		if err != nil {
			return nil, err
		}
		if !actor.IsSuperadmin() && role.Name != domain.RoleUser {
			return nil, domain.ErrForbidden
		}
	} else {
		role, err = s.roles.FindByName(ctx, domain.RoleUser)
		if err != nil {
			return nil, err
		}
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		IsActive:     true,
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("actor_id", actor.ID).Int64("user_id", created.ID).Str("role", created.RoleName).Msg("user created")
	return created, nil
}

// UpdateUser applies a partial update to the target user, subject to:
//   - a superadmin target requires a superadmin actor;
//   - a non-superadmin actor may not touch another admin and may not set
//     role_id at all;
//   - no actor may change their own role.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if target.IsSuperadmin() && !actor.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}
	if !actor.IsSuperadmin() && target.IsAdmin() && target.ID != actor.ID {
		return nil, domain.ErrForbidden
	}

	if input.RoleID != nil {
		if target.ID == actor.ID {
			return nil, domain.ErrForbidden
		}
		if !actor.IsSuperadmin() {
			return nil, domain.ErrForbidden
		}
		role, err := s.roles.FindByID(ctx, *input.RoleID)
		if err != nil {
			return nil, err
		}
		target.RoleID = role.ID
		target.RoleName = role.Name
	}

	if input.Email != nil {
		target.Email = *input.Email
	}
	if input.Username != nil {
		target.Username = *input.Username
	}
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}
	target.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("actor_id", actor.ID).Int64("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// DeleteUser removes the target user, subject to:
//   - a superadmin target requires a superadmin actor;
//   - a non-superadmin actor may not delete an admin;
//   - no actor may delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if target.ID == actor.ID {
		return domain.ErrForbidden
	}
	if target.IsSuperadmin() && !actor.IsSuperadmin() {
		return domain.ErrForbidden
	}
	if !actor.IsSuperadmin() && target.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("actor_id", actor.ID).Int64("user_id", id).Msg("user deleted")
	return nil
}
