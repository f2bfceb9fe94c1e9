package ports

import (
	"context"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

// AuditRepository persists authentication events to the audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
