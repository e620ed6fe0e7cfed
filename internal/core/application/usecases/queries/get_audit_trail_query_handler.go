package queries

import (
	"context"
	"encoding/json"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads one order's audit events from the
// append-only audit store.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail queries.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle executes the query. Events come back oldest first; an order with
// no recorded events yields an empty slice, not an error.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			event_type,
			actor_id,
			actor_kind,
			metadata,
			occurred_at
		FROM audit_events
		WHERE order_id = ?
	`
	args := []any{query.OrderID().String()}
	if !query.From().IsZero() {
		sql += " AND occurred_at >= ?"
		args = append(args, query.From())
	}
	if !query.To().IsZero() {
		sql += " AND occurred_at < ?"
		args = append(args, query.To())
	}
	sql += " ORDER BY occurred_at, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trail := make([]GetAuditTrailQueryResponse, 0)
	for rows.Next() {
		var (
			resp     GetAuditTrailQueryResponse
			id       uuid.UUID
			actorID  uuid.UUID
			metadata []byte
		)

		if err = rows.Scan(
			&id,
			&resp.EventType,
			&actorID,
			&resp.ActorKind,
			&metadata,
			&resp.OccurredAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err = json.Unmarshal(metadata, &resp.Metadata); err != nil {
				return nil, err
			}
		}
		trail = append(trail, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trail, nil
}
