package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// uniqueViolation is the SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// UserStore implements driven.UserStore using PostgreSQL
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// ExistsByEmail reports whether a user is registered under the email
func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

// GetByEmail retrieves a user by email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, roles, created_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	var roles []string

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		pq.Array(&roles),
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	user.Roles = toRoles(roles)
	return &user, nil
}

// Create inserts a user; the database assigns id and created_at.
// The UNIQUE(email) constraint makes concurrent registrations safe.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, roles)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		pq.Array(fromRoles(user.Roles)),
	).Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Ping checks if the database is reachable
func (s *UserStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func toRoles(labels []string) []domain.Role {
	roles := make([]domain.Role, len(labels))
	for i, l := range labels {
		roles[i] = domain.Role(l)
	}
	return roles
}

func fromRoles(roles []domain.Role) []string {
	labels := make([]string, len(roles))
	for i, r := range roles {
		labels[i] = string(r)
	}
	return labels
}
