package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository persists authentication events to the audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Email     string `bson:"email"`
	Action    string `bson:"action"`
	Timestamp int64  `bson:"timestamp"`
	RemoteIP  string `bson:"remote_ip,omitempty"`
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Email:     event.Email,
		Action:    string(event.Action),
		Timestamp: event.Timestamp.Unix(),
		RemoteIP:  event.RemoteIP,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
