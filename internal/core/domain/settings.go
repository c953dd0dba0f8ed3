package domain

import "time"

// AuthSettings is the process-wide singleton controlling which login methods
// are available. It is created lazily with defaults (regular enabled, Google
// disabled) and mutated only by a superadmin.
type AuthSettings struct {
	ID                 int64     `json:"id"`
	RegularAuthEnabled bool      `json:"regular_auth_enabled"`
	GoogleAuthEnabled  bool      `json:"google_auth_enabled"`
	GoogleClientID     string    `json:"google_client_id,omitempty"`
	GoogleClientSecret string    `json:"-"`
	UpdatedAt          time.Time `json:"updated_at"`
	UpdatedBy          int64     `json:"updated_by"`
}

// DefaultAuthSettings returns the settings persisted on first access.
func DefaultAuthSettings() AuthSettings {
	return AuthSettings{ID: 1, RegularAuthEnabled: true}
}

// Validate enforces the settings invariants: at least one auth method must
// stay enabled, and Google auth requires both client credentials.
func (s AuthSettings) Validate() error {
	if !s.RegularAuthEnabled && !s.GoogleAuthEnabled {
		return ErrSettingsInvalid
	}
	if s.GoogleAuthEnabled && (s.GoogleClientID == "" || s.GoogleClientSecret == "") {
		return ErrSettingsInvalid
	}
	return nil
}
