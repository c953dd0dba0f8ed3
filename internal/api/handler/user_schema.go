package handler

import "github.com/openalgo/auth-system/internal/core/domain"

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	RoleID   *int64 `json:"role_id,omitempty"`
}

// updateUserRequest is a partial field set; absent fields are untouched.
type updateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	RoleID   *int64  `json:"role_id,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// manageResponse backs the admin management surface: all users plus the
// assignable roles.
type manageResponse struct {
	Users []userResponse `json:"users"`
	Roles []domain.Role  `json:"roles"`
}
