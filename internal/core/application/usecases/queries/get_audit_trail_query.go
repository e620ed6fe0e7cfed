package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery retrieves the audit events recorded for one order in
// the order they occurred.
//
// Example:
//
//	query, err := NewGetAuditTrailQuery(orderID, time.Time{}, time.Time{})
//	if err != nil {
//	    return fmt.Errorf("invalid audit query: %w", err)
//	}
//
//	trail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get audit trail: %w", err)
//	}
//
//	for _, event := range trail {
//	    fmt.Printf("%s %s by %s\n", event.OccurredAt, event.EventType, event.ActorID)
//	}
type GetAuditTrailQuery struct {
	orderID kernel.UUID
	from    time.Time
	to      time.Time

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates a query for one order's audit trail. The
// from and to bounds are optional; pass zero times to span the full
// history.
func NewGetAuditTrailQuery(orderID kernel.UUID, from, to time.Time) (GetAuditTrailQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAuditTrailQuery{}, err
	}
	return GetAuditTrailQuery{
		orderID: orderID,
		from:    from,
		to:      to,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAuditTrailQueryIsNotConstructed if validation fails.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// OrderID returns the id of the order whose trail is requested.
func (q GetAuditTrailQuery) OrderID() kernel.UUID {
	return q.orderID
}

// From returns the inclusive lower time bound, zero when unbounded.
func (q GetAuditTrailQuery) From() time.Time {
	return q.from
}

// To returns the exclusive upper time bound, zero when unbounded.
func (q GetAuditTrailQuery) To() time.Time {
	return q.to
}

// GetAuditTrailQueryResponse is one audit event in an order's trail.
type GetAuditTrailQueryResponse struct {
	ID         kernel.UUID
	EventType  string
	ActorID    kernel.UUID
	ActorKind  string
	Metadata   map[string]string
	OccurredAt time.Time
}
