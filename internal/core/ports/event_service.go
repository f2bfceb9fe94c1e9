package ports

import (
	"context"
	"time"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

// AuthEventInput is the DTO handed from the transport layer to the audit
// pipeline.
type AuthEventInput struct {
	Email     string
	Action    domain.AuthAction
	Timestamp time.Time
	RemoteIP  string
}

// AuditService records authentication events for the audit trail.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
}
