package ports

import (
	"context"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

// RegisterInput carries a validated registration request into the service.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	// RoleLabels are the external labels requested by the client ("admin",
	// "mod", ...). Empty means the default role set.
	RoleLabels []string
}

// AuthService verifies credentials, issues tokens, and registers accounts.
type AuthService interface {
	// Login authenticates the email/password pair and returns the resolved
	// identity plus a signed token. Unknown email and wrong password are both
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.Identity, string, error)

	// Register creates a new account. Duplicate email is domain.ErrEmailTaken.
	Register(ctx context.Context, in RegisterInput) error

	// Identify resolves a validated token subject to a full identity.
	Identify(ctx context.Context, email string) (*domain.Identity, error)
}
