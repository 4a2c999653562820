package domain

import (
	"slices"
	"time"
)

const (
	// MessageRegistered is returned alongside the token after a registration
	MessageRegistered = "User registered successfully!"

	// MessageLoggedIn is returned alongside the token after a login
	MessageLoggedIn = "Login Successful"
)

// AuthContext contains authenticated user info for request context.
// It lives for a single request and is never persisted.
type AuthContext struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}

// HasRole checks if the authenticated user carries the role
func (a *AuthContext) HasRole(role Role) bool {
	return slices.Contains(a.Roles, role)
}

// Summary returns the public view of the identity. Roles are copied.
func (a *AuthContext) Summary() *UserSummary {
	return &UserSummary{
		ID:       a.UserID,
		Username: a.Username,
		Email:    a.Email,
		Roles:    slices.Clone(a.Roles),
	}
}

// RegisterRequest represents a sign-up attempt.
// The password max counts characters; the 72-byte bcrypt ceiling is
// enforced by the hasher, which reports it as ErrInvalidInput.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Roles    []Role `json:"roles,omitempty" validate:"omitempty,dive,required"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful registration or login
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// TokenClaims represents the session token payload
type TokenClaims struct {
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

