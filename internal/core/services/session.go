package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
	"github.com/neotech-labs/auth-core/internal/core/ports/driving"
)

// Ensure sessionAuthenticator implements SessionAuthenticator
var _ driving.SessionAuthenticator = (*sessionAuthenticator)(nil)

// sessionAuthenticator resolves bearer tokens against the user store.
// Tokens are stateless, so there is no session lookup.
type sessionAuthenticator struct {
	userStore driven.UserStore
	tokens    driven.TokenCodec
}

// NewSessionAuthenticator creates a new SessionAuthenticator
func NewSessionAuthenticator(userStore driven.UserStore, tokens driven.TokenCodec) driving.SessionAuthenticator {
	return &sessionAuthenticator{
		userStore: userStore,
		tokens:    tokens,
	}
}

// Authenticate verifies the token, loads its subject and builds the auth context
func (a *sessionAuthenticator) Authenticate(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenMalformed
	}

	email, err := a.tokens.Subject(token)
	if err != nil {
		return nil, err
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIdentityNotFound, email)
	}
	if err != nil {
		return nil, err
	}

	// Explicit gate; Subject has already checked signature and expiry
	if err := a.tokens.Validate(token); err != nil {
		return nil, err
	}

	return &domain.AuthContext{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Roles:    slices.Clone(user.Roles),
	}, nil
}
