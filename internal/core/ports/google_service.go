package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// OAuthCredentials are the client credentials taken from the mutable
// AuthSettings row at call time.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

// ExternalIdentity is the verified identity returned by the provider after a
// successful code exchange.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
}

// IdentityProvider exchanges an authorization code for a verified identity.
type IdentityProvider interface {
	AuthCodeURL(ctx context.Context, creds OAuthCredentials, state string) (string, error)
	Exchange(ctx context.Context, creds OAuthCredentials, code string) (*ExternalIdentity, error)
}

// StateStore persists single-use OAuth state nonces between the login
// redirect and the callback.
type StateStore interface {
	Save(ctx context.Context, state string) error
	// Consume removes the state and reports whether it existed.
	Consume(ctx context.Context, state string) (bool, error)
}

// GoogleAuthService drives the external login flow end to end.
type GoogleAuthService interface {
	// LoginURL gates on the Google-auth setting, issues a state nonce and
	// builds the authorization redirect URL.
	LoginURL(ctx context.Context) (string, error)
	// Callback validates the state, exchanges the code, resolves or creates
	// the local user and issues a session token.
	Callback(ctx context.Context, state, code string) (string, *domain.User, error)
}
