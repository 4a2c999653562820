package driven

import "github.com/neotech-labs/auth-core/internal/core/domain"

// PasswordHasher handles one-way password digests.
type PasswordHasher interface {
	// Hash returns a salted digest of the plaintext password
	Hash(password string) (string, error)

	// Verify reports whether the plaintext matches the digest
	Verify(password, digest string) bool
}

// TokenCodec issues and verifies stateless signed session tokens.
// This does NOT handle storage - tokens carry everything needed to verify them.
type TokenCodec interface {
	// Issue signs a token for the subject, valid from now for the configured window
	Issue(subject string) (string, error)

	// Verify reports whether the token is correctly signed and not expired
	Verify(token string) bool

	// Validate is Verify with the reason for rejection:
	// domain.ErrTokenMalformed, domain.ErrTokenExpired, domain.ErrTokenSignature
	// or domain.ErrTokenInvalid.
	Validate(token string) error

	// Parse validates the token and returns its claims
	Parse(token string) (*domain.TokenClaims, error)

	// Subject validates the token and returns its subject claim
	Subject(token string) (string, error)
}
