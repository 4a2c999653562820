package driving

import (
	"context"

	"github.com/neotech-labs/auth-core/internal/core/domain"
)

// AuthService handles account registration and login
type AuthService interface {
	// Register creates an account and returns a session token for it
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)

	// Login checks credentials and returns a session token
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
}

// SessionAuthenticator resolves a bearer token to the identity it was issued for
type SessionAuthenticator interface {
	// Authenticate verifies the token and loads its identity.
	// Returns a token error, domain.ErrIdentityNotFound, or a store error.
	Authenticate(ctx context.Context, token string) (*domain.AuthContext, error)
}
