package domain

import "errors"

// ErrInvalidCredentials covers both an unknown username and a wrong password.
// The two cases are deliberately indistinguishable to resist enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
var ErrUserExists = errors.New("email or username already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrSettingsInvalid = errors.New("invalid auth settings")
var ErrAuthMethodDisabled = errors.New("authentication method disabled")
var ErrExternalAuth = errors.New("external authentication failed")
