package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// userEmailPrefix keys one record per registered email
const userEmailPrefix = "user:email:"

// userRecord is the stored form of a user; unlike domain.User it keeps the digest
type userRecord struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"password_hash"`
	Roles        []domain.Role `json:"roles"`
	CreatedAt    time.Time     `json:"created_at"`
}

// UserStore implements driven.UserStore using Redis.
// Records never expire; SETNX on the email key is the uniqueness guard.
type UserStore struct {
	client *redis.Client
}

// NewUserStore creates a new Redis-backed UserStore
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// ExistsByEmail reports whether a user is registered under the email
func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.client.Exists(ctx, userEmailPrefix+email).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return n > 0, nil
}

// GetByEmail retrieves a user by email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	data, err := s.client.Get(ctx, userEmailPrefix+email).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Roles:        rec.Roles,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

// Create stores a new user and assigns its ID
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	rec := userRecord{
		ID:           uuid.NewString(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        user.Roles,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	created, err := s.client.SetNX(ctx, userEmailPrefix+user.Email, data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if !created {
		return domain.ErrAlreadyExists
	}

	user.ID = rec.ID
	user.CreatedAt = rec.CreatedAt
	return nil
}

// Ping checks if Redis is reachable
func (s *UserStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
