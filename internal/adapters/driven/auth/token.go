package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
)

// Ensure TokenCodec implements driven.TokenCodec
var _ driven.TokenCodec = (*TokenCodec)(nil)

// DefaultTokenTTL is the validity window used when none is configured
const DefaultTokenTTL = 24 * time.Hour

// TokenCodec issues and verifies HS256 JWTs whose only custom content is
// the subject. There is no server-side session record; a token stays valid
// until its exp claim passes.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec signing with the given secret.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the validity window of issued tokens
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed JWT for the subject
func (c *TokenCodec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty token subject", domain.ErrInvalidInput)
	}

	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify reports whether the token is correctly signed and unexpired
func (c *TokenCodec) Verify(tokenString string) bool {
	return c.Validate(tokenString) == nil
}

// Validate checks signature and expiry, classifying any failure
func (c *TokenCodec) Validate(tokenString string) error {
	_, err := c.Parse(tokenString)
	return err
}

// Parse validates a JWT and extracts domain claims
func (c *TokenCodec) Parse(tokenString string) (*domain.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	result := &domain.TokenClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}

// Subject validates the token and returns the email it was issued for
func (c *TokenCodec) Subject(tokenString string) (string, error) {
	claims, err := c.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenInvalid
	}
}
