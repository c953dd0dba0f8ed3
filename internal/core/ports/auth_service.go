package ports

import (
	"context"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// RegisterInput carries a self-service registration request.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// AuthService covers credential authentication, token issuance and the
// registration/bootstrap flow.
type AuthService interface {
	// Register creates an account. The first user ever created becomes
	// superadmin; every later one gets the user role. Gated on the
	// regular-auth setting.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login authenticates credentials and returns a signed bearer token.
	// Unknown username and wrong password are indistinguishable in the
	// returned error.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ResolveToken verifies a bearer token and resolves its subject to a
	// live user record.
	ResolveToken(ctx context.Context, tokenString string) (*domain.User, error)
}
