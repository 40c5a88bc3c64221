package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

const auditCollection = "auth_audit"

// MongoAuditRepository appends authentication audit events. Entries are
// append-only; nothing in the service ever updates or deletes them.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Kind       string `bson:"kind"`
	Username   string `bson:"username"`
	AccountID  string `bson:"account_id,omitempty"`
	Channel    string `bson:"channel,omitempty"`
	Detail     string `bson:"detail,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *MongoAuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		Kind:       event.Kind,
		Username:   event.Username,
		AccountID:  event.AccountID,
		Channel:    event.Channel,
		Detail:     event.Detail,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
