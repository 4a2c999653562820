package domain

import (
	"slices"
	"strings"
	"time"
)

// Role is a free-form authority label attached to a user
type Role string

const (
	RoleUser  Role = "USER"  // Default for every new account
	RoleAdmin Role = "ADMIN" // Elevated account
)

// User represents a registered identity
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary provides a safe view of user data (no password hash)
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// NormalizeRoles turns a requested role list into a set: labels are trimmed,
// blanks and duplicates dropped, and the result sorted. An empty result
// becomes {RoleUser}.
func NormalizeRoles(roles []Role) []Role {
	set := make([]Role, 0, len(roles))
	for _, r := range roles {
		r = Role(strings.TrimSpace(string(r)))
		if r == "" || slices.Contains(set, r) {
			continue
		}
		set = append(set, r)
	}
	if len(set) == 0 {
		return []Role{RoleUser}
	}
	slices.Sort(set)
	return set
}
