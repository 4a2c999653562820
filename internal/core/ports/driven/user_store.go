package driven

import (
	"context"

	"github.com/neotech-labs/auth-core/internal/core/domain"
)

// UserStore handles user persistence (PostgreSQL or Redis), keyed by email
type UserStore interface {
	// ExistsByEmail reports whether a user is registered under the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByEmail retrieves a user by email, domain.ErrNotFound if absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create inserts a new user and assigns its ID.
	// Returns domain.ErrAlreadyExists when the email is taken; this is the
	// authoritative uniqueness check.
	Create(ctx context.Context, user *domain.User) error

	// Ping checks if the store backend is reachable
	Ping(ctx context.Context) error
}
