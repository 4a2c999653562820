package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
)

// Ensure PasswordHasher implements driven.PasswordHasher
var _ driven.PasswordHasher = (*PasswordHasher)(nil)

// PasswordHasher digests passwords with bcrypt
type PasswordHasher struct {
	cost int
}

// NewPasswordHasherWithCost creates a hasher with a custom bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a bcrypt hash from a plaintext password
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password exceeds 72 bytes", domain.ErrInvalidInput)
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks if a password matches a bcrypt hash
func (h *PasswordHasher) Verify(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}
