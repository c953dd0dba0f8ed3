package handler

import "time"

// errorResponse documents the standard error envelope for swagger purposes;
// the central error handler renders it.
type errorResponse struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest binds both the form-encoded login surfaces and JSON clients.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse is the public projection of a user record.
type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	RoleID    int64     `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type dashboardResponse struct {
	User         userResponse `json:"user"`
	Role         string       `json:"role"`
	IsAdmin      bool         `json:"is_admin"`
	IsSuperadmin bool         `json:"is_superadmin"`
}
