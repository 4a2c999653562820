package mocks

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
)

// Ensure MockUserStore implements UserStore
var _ driven.UserStore = (*MockUserStore)(nil)

// MockUserStore is a mock implementation of UserStore for testing
type MockUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User

	// PingErr is returned by Ping when set
	PingErr error
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		byEmail: make(map[string]*domain.User),
	}
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(user), nil
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return domain.ErrAlreadyExists
	}
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.byEmail[user.Email] = cloneUser(user)
	return nil
}

func (m *MockUserStore) Ping(ctx context.Context) error {
	return m.PingErr
}

// cloneUser copies a record so callers never share its role slice with the store
func cloneUser(user *domain.User) *domain.User {
	clone := *user
	clone.Roles = slices.Clone(user.Roles)
	return &clone
}

// Helper methods for testing

// Delete removes a user, simulating an identity deleted after token issuance
func (m *MockUserStore) Delete(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byEmail, email)
}

func (m *MockUserStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail = make(map[string]*domain.User)
}

func (m *MockUserStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byEmail)
}
