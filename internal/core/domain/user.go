package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorities a user can hold.
type Role string

const (
	RoleUser      Role = "ROLE_USER"
	RoleModerator Role = "ROLE_MODERATOR"
	RoleAdmin     Role = "ROLE_ADMIN"
)

// roleLabels maps the external labels accepted at registration to roles.
// Unknown labels deliberately resolve to RoleUser; there is no error path
// for an unrecognised label.
var roleLabels = map[string]Role{
	"admin": RoleAdmin,
	"mod":   RoleModerator,
	"user":  RoleUser,
}

// RoleFromLabel resolves an external registration label to a Role.
// Anything outside the known labels defaults to RoleUser.
func RoleFromLabel(label string) Role {
	if r, ok := roleLabels[label]; ok {
		return r
	}
	return RoleUser
}

// AllRoles enumerates every role the credential store must be seeded with.
func AllRoles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// ErrRoleNotSeeded means a role record expected to exist in the store is
	// missing. This is a deployment integrity failure, never a client mistake.
	ErrRoleNotSeeded = errors.New("role not seeded in credential store")
)

// User is the persisted account record.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}
