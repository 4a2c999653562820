package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrEmailAlreadyInUse indicates a registration for an email that already has an account
	ErrEmailAlreadyInUse = errors.New("email is already in use")

	// ErrInvalidCredentials covers both an unknown email and a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrIdentityNotFound indicates a valid token whose subject has no stored identity
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrTokenInvalid indicates the auth token failed verification for an unclassified reason
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenMalformed indicates the auth token could not be decoded
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenSignature indicates the token signature does not match the signing key
	ErrTokenSignature = errors.New("token signature invalid")
)
