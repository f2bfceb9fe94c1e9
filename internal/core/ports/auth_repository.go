package ports

import (
	"context"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

// UserRepository is the credential-store boundary for user records.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository is the credential-store boundary for role records.
type RoleRepository interface {
	// FindByName returns the stored role record for name, or
	// domain.ErrRoleNotSeeded if the store was never seeded with it.
	FindByName(ctx context.Context, name domain.Role) (domain.Role, error)
}
