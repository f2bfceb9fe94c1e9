package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/ports"
)

type stubAuditRepo struct {
	events []*domain.AuthEvent
	err    error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	err := svc.Process(context.Background(), ports.AuthEventInput{
		Email:     "x@y.com",
		Action:    domain.ActionLoginSucceeded,
		Timestamp: ts,
		RemoteIP:  "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected one event, got %d", len(repo.events))
	}
	got := repo.events[0]
	if got.Email != "x@y.com" || got.Action != domain.ActionLoginSucceeded {
		t.Fatalf("unexpected event: %+v", got)
	}
	if !got.Timestamp.Equal(ts) {
		t.Fatalf("timestamp not preserved: %v", got.Timestamp)
	}
}

func TestAuditService_Process_DefaultsTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), ports.AuthEventInput{
		Email:  "x@y.com",
		Action: domain.ActionRegistered,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if repo.events[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be defaulted")
	}
}

func TestAuditService_Process_RepoError(t *testing.T) {
	repoErr := errors.New("mongo down")
	svc := NewAuditService(&stubAuditRepo{err: repoErr}, zerolog.Nop())

	err := svc.Process(context.Background(), ports.AuthEventInput{
		Email:  "x@y.com",
		Action: domain.ActionLoginFailed,
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
