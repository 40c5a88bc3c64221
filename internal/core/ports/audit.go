package ports

import (
	"context"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink is the asynchronous entry point used by the login paths; Enqueue
// never blocks the request beyond the sink's buffer capacity.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
