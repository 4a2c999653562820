package postgres

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/neotech-labs/auth-core/internal/config"
	"github.com/neotech-labs/auth-core/internal/core/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"unique violation", &pq.Error{Code: "23505", Constraint: "users_email_key"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"not null violation", &pq.Error{Code: "23502"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRoleConversion(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleUser}

	labels := fromRoles(roles)
	if !slices.Equal(labels, []string{"ADMIN", "USER"}) {
		t.Errorf("unexpected labels: %v", labels)
	}

	back := toRoles(labels)
	if !slices.Equal(back, roles) {
		t.Errorf("expected %v, got %v", roles, back)
	}
}

func TestSchema_EnforcesUniqueEmail(t *testing.T) {
	if !strings.Contains(schema, "UNIQUE (email)") {
		t.Error("users schema must declare a unique constraint on email")
	}
	if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS users") {
		t.Error("schema must be idempotent")
	}
}

func TestOpen_SizesPool(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Database
		expected int
	}{
		{"configured limit", config.Database{URL: "postgres://localhost/auth", MaxOpenConns: 25, MaxIdleConns: 5}, 25},
		{"small pool", config.Database{URL: "postgres://localhost/auth", MaxOpenConns: 3, MaxIdleConns: 10}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := open(tt.cfg)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer pool.Close()

			// No connection is dialed until first use
			if got := pool.Stats().MaxOpenConnections; got != tt.expected {
				t.Errorf("expected max open %d, got %d", tt.expected, got)
			}
			if got := pool.Stats().OpenConnections; got != 0 {
				t.Errorf("expected no open connections, got %d", got)
			}
		})
	}
}

func TestLockKey(t *testing.T) {
	if lockKey(schemaLock) != lockKey("schema") {
		t.Error("expected stable key for the same name")
	}
	if lockKey("schema") == lockKey("other") {
		t.Error("expected distinct keys for distinct names")
	}
}
