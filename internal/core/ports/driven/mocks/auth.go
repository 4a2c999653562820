package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
)

// Ensure mocks implement the ports
var (
	_ driven.PasswordHasher = (*MockPasswordHasher)(nil)
	_ driven.TokenCodec     = (*MockTokenCodec)(nil)
)

// MockPasswordHasher is a mock implementation of PasswordHasher for testing.
// It prefixes the password instead of hashing it.
// NOT secure - only for testing.
type MockPasswordHasher struct{}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// Hash returns a recognisable fake digest (for testing only)
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

// Verify compares against the fake digest (for testing only)
func (m *MockPasswordHasher) Verify(password, digest string) bool {
	return "hashed:"+password == digest
}

// MockTokenCodec is a mock implementation of TokenCodec for testing.
// Tokens are base64-encoded JSON claims with no signature.
type MockTokenCodec struct {
	TTL time.Duration
	Now func() time.Time
}

// NewMockTokenCodec creates a new MockTokenCodec with a 24h window
func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{
		TTL: 24 * time.Hour,
		Now: time.Now,
	}
}

// Issue creates a base64-encoded JSON token for the subject
func (m *MockTokenCodec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty token subject", domain.ErrInvalidInput)
	}
	now := m.Now()
	data, err := json.Marshal(domain.TokenClaims{
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.TTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Verify reports whether the token decodes and is unexpired
func (m *MockTokenCodec) Verify(token string) bool {
	return m.Validate(token) == nil
}

// Validate decodes the token and checks expiry
func (m *MockTokenCodec) Validate(token string) error {
	_, err := m.Parse(token)
	return err
}

// Parse decodes a base64-encoded JSON token and returns claims
func (m *MockTokenCodec) Parse(token string) (*domain.TokenClaims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	if !m.Now().Before(claims.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	return &claims, nil
}

// Subject returns the subject of a valid token
func (m *MockTokenCodec) Subject(token string) (string, error) {
	claims, err := m.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

