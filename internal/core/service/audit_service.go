package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService writing to the audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single authentication event to the audit trail.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuthEvent{
		Email:     in.Email,
		Action:    in.Action,
		Timestamp: ts,
		RemoteIP:  in.RemoteIP,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}

	s.log.Debug().
		Str("email", in.Email).
		Str("action", string(in.Action)).
		Msg("auth event recorded")

	return nil
}
