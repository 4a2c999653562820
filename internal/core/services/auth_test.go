package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/neotech-labs/auth-core/internal/adapters/driven/auth"
	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven/mocks"
)

func newTestAuthService() (*mocks.MockUserStore, *mocks.MockTokenCodec, *authService) {
	userStore := mocks.NewMockUserStore()
	tokens := mocks.NewMockTokenCodec()
	svc := NewAuthService(userStore, mocks.NewMockPasswordHasher(), tokens, nil).(*authService)
	return userStore, tokens, svc
}

func validRegisterRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	userStore, tokens, svc := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegisterRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Message != "User registered successfully!" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	subject, err := tokens.Subject(resp.Token)
	if err != nil {
		t.Fatalf("expected a valid token, got %v", err)
	}
	if subject != "a@x.com" {
		t.Errorf("expected token subject a@x.com, got %s", subject)
	}

	stored, err := userStore.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("expected user to be stored: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected store-assigned ID")
	}
	if stored.Username != "alice" {
		t.Errorf("expected username alice, got %s", stored.Username)
	}
	if stored.PasswordHash == "secret1" {
		t.Error("password must not be stored in plain text")
	}
	if stored.PasswordHash != "hashed:secret1" {
		t.Errorf("expected hasher digest, got %s", stored.PasswordHash)
	}
	if !slices.Equal(stored.Roles, []domain.Role{domain.RoleUser}) {
		t.Errorf("expected default roles [USER], got %v", stored.Roles)
	}
}

func TestAuthService_Register_Roles(t *testing.T) {
	tests := []struct {
		name     string
		roles    []domain.Role
		expected []domain.Role
	}{
		{"nil roles", nil, []domain.Role{domain.RoleUser}},
		{"empty roles", []domain.Role{}, []domain.Role{domain.RoleUser}},
		{"provided roles", []domain.Role{domain.RoleAdmin}, []domain.Role{domain.RoleAdmin}},
		{"duplicate roles", []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleUser}, []domain.Role{domain.RoleAdmin, domain.RoleUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore, _, svc := newTestAuthService()
			req := validRegisterRequest()
			req.Roles = tt.roles

			if _, err := svc.Register(context.Background(), req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stored, _ := userStore.GetByEmail(context.Background(), req.Email)
			if !slices.Equal(stored.Roles, tt.expected) {
				t.Errorf("expected roles %v, got %v", tt.expected, stored.Roles)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userStore, _, svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every other field differs
	_, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "bob",
		Email:    "a@x.com",
		Password: "another-password",
		Roles:    []domain.Role{domain.RoleAdmin},
	})
	if err != domain.ErrEmailAlreadyInUse {
		t.Errorf("expected ErrEmailAlreadyInUse, got %v", err)
	}
	if userStore.Count() != 1 {
		t.Errorf("expected 1 stored user, got %d", userStore.Count())
	}
}

// racingUserStore reports every email as free, so the store's own
// uniqueness check is the one that fires
type racingUserStore struct {
	*mocks.MockUserStore
}

func (r racingUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestAuthService_Register_StoreRejectsDuplicate(t *testing.T) {
	store := racingUserStore{mocks.NewMockUserStore()}
	svc := NewAuthService(store, mocks.NewMockPasswordHasher(), mocks.NewMockTokenCodec(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Register(ctx, validRegisterRequest())
	if err != domain.ErrEmailAlreadyInUse {
		t.Errorf("expected ErrEmailAlreadyInUse from store conflict, got %v", err)
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"empty username", domain.RegisterRequest{Email: "a@x.com", Password: "secret1"}},
		{"empty email", domain.RegisterRequest{Username: "alice", Password: "secret1"}},
		{"invalid email", domain.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret1"}},
		{"empty password", domain.RegisterRequest{Username: "alice", Email: "a@x.com"}},
		{"short password", domain.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "abc"}},
		{"blank role", domain.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1", Roles: []domain.Role{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore, _, svc := newTestAuthService()

			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if userStore.Count() != 0 {
				t.Error("expected nothing to be stored")
			}
		})
	}
}

func TestAuthService_Register_PasswordByteLimit(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"72 ascii bytes", strings.Repeat("a", 72), false},
		{"36 two-byte runes", strings.Repeat("é", 36), false},
		{"40 two-byte runes", strings.Repeat("é", 40), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Every case passes the character count check
			if n := utf8.RuneCountInString(tt.password); n > 72 {
				t.Fatalf("test password has %d runes", n)
			}

			userStore := mocks.NewMockUserStore()
			hasher := auth.NewPasswordHasherWithCost(bcrypt.MinCost)
			svc := NewAuthService(userStore, hasher, mocks.NewMockTokenCodec(), nil)

			req := validRegisterRequest()
			req.Password = tt.password
			_, err := svc.Register(context.Background(), req)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for %d-byte password, got %v", len(tt.password), err)
			}
			if userStore.Count() != 0 {
				t.Error("expected nothing to be stored")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	_, tokens, svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name:    "valid credentials",
			req:     domain.LoginRequest{Email: "a@x.com", Password: "secret1"},
			wantErr: nil,
		},
		{
			name:    "wrong password",
			req:     domain.LoginRequest{Email: "a@x.com", Password: "wrongpassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			req:     domain.LoginRequest{Email: "unknown@x.com", Password: "secret1"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "empty email",
			req:     domain.LoginRequest{Password: "secret1"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty password",
			req:     domain.LoginRequest{Email: "a@x.com"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Message != "Login Successful" {
				t.Errorf("unexpected message %q", resp.Message)
			}
			subject, err := tokens.Subject(resp.Token)
			if err != nil {
				t.Fatalf("expected valid token: %v", err)
			}
			if subject != tt.req.Email {
				t.Errorf("expected subject %s, got %s", tt.req.Email, subject)
			}
		})
	}
}

func TestAuthService_Login_ErrorsIndistinguishable(t *testing.T) {
	_, _, svc := newTestAuthService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, validRegisterRequest())

	_, wrongPassword := svc.Login(ctx, domain.LoginRequest{Email: "a@x.com", Password: "nope-nope"})
	_, unknownEmail := svc.Login(ctx, domain.LoginRequest{Email: "ghost@x.com", Password: "secret1"})

	if wrongPassword != unknownEmail {
		t.Errorf("expected identical errors, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("expected identical error messages")
	}
}
