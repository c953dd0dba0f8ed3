package domain

import "time"

// User models an account in the system. Email and username are globally
// unique. PasswordHash is empty only for accounts created through the
// external (Google) login flow; an empty hash never verifies, so those
// accounts cannot authenticate with credentials.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	RoleID       int64     `json:"role_id"`
	RoleName     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Tier returns the user's ordered privilege tier.
func (u *User) Tier() Tier {
	return TierOf(u.RoleName)
}

// IsAdmin reports whether the user holds the admin or superadmin role.
func (u *User) IsAdmin() bool {
	return u.Tier().AtLeast(TierAdmin)
}

// IsSuperadmin reports whether the user holds the superadmin role.
func (u *User) IsSuperadmin() bool {
	return u.Tier() == TierSuperadmin
}
