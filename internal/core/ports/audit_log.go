package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
)

// AuditFilter narrows an audit trail query. Zero-value fields are ignored;
// an empty filter returns the full trail.
type AuditFilter struct {
	OrderID   *kernel.UUID
	ActorID   *kernel.UUID
	EventType audit.EventType
	From      time.Time
	To        time.Time
}

// AuditLog defines the append-only persistence contract for audit events.
// There is no update or delete: events are written once and kept forever.
type AuditLog interface {
	// Append persists a new audit event.
	Append(ctx context.Context, event *audit.Event) error

	// Query retrieves events matching the filter, ordered by occurrence
	// time ascending.
	Query(ctx context.Context, filter AuditFilter) ([]*audit.Event, error)
}
