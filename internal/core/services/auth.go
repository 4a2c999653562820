package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
	"github.com/neotech-labs/auth-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore driven.UserStore
	hasher    driven.PasswordHasher
	tokens    driven.TokenCodec
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService. A nil logger uses slog.Default().
func NewAuthService(
	userStore driven.UserStore,
	hasher driven.PasswordHasher,
	tokens driven.TokenCodec,
	logger *slog.Logger,
) driving.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		validate:  newValidator(),
		logger:    logger.With("component", "auth"),
	}
}

// Register creates an account and issues its first token
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	// Fast path only; Create is the authoritative uniqueness check
	exists, err := s.userStore.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyInUse
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        domain.NormalizeRoles(req.Roles),
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrEmailAlreadyInUse
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "roles", user.Roles)

	return &domain.AuthResponse{
		Token:   token,
		Message: domain.MessageRegistered,
	}, nil
}

// Login validates credentials and issues a token
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "user logged in", "user_id", user.ID)

	return &domain.AuthResponse{
		Token:   token,
		Message: domain.MessageLoggedIn,
	}, nil
}
