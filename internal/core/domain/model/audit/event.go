package audit

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through the NewEvent factory function.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent")

// EventType classifies an audit event.
type EventType int

const (
	// UnknownEventType represents an invalid or undefined event type.
	UnknownEventType EventType = iota

	// OrderCreated records a new order entering the system.
	OrderCreated

	// CommissionComputed records a commission split applied to an order.
	CommissionComputed

	// StatusChanged records a fulfilment status transition.
	StatusChanged

	// OrderCompleted records the financial summary at completion.
	OrderCompleted

	// CommissionMismatch records a reconciliation finding: the stored split
	// of a completed order does not reassemble its gross amount.
	CommissionMismatch
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		UnknownEventType:   "unknown",
		OrderCreated:       "order_created",
		CommissionComputed: "commission_computed",
		StatusChanged:      "status_changed",
		OrderCompleted:     "order_completed",
		CommissionMismatch: "commission_mismatch",
	}
}

// EventTypeFromString parses an event type from its string representation.
func EventTypeFromString(value string) (EventType, error) {
	for t, s := range getEventTypeStrings() {
		if t != UnknownEventType && s == value {
			return t, nil
		}
	}
	return UnknownEventType, errs.NewValueIsInvalidErrorWithCause("event type",
		fmt.Errorf("%q is not a known event type", value))
}

// Validate checks if the EventType value is valid.
func (t EventType) Validate() error {
	if t < OrderCreated || t > CommissionMismatch {
		return errs.NewValueIsInvalidErrorWithCause("event type",
			fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

// String returns the lowercase name of the event type.
func (t EventType) String() string {
	if s, ok := getEventTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// ActorKind classifies who triggered an audit event.
type ActorKind int

const (
	// UnknownActorKind represents an invalid or undefined actor kind.
	UnknownActorKind ActorKind = iota

	// ActorCustomer is the customer who owns the order.
	ActorCustomer

	// ActorProvider is the provider fulfilling the order.
	ActorProvider

	// ActorSystem is the platform itself (jobs, reconciliation).
	ActorSystem
)

func getActorKindStrings() map[ActorKind]string {
	return map[ActorKind]string{
		UnknownActorKind: "unknown",
		ActorCustomer:    "customer",
		ActorProvider:    "provider",
		ActorSystem:      "system",
	}
}

// ActorKindFromString parses an actor kind from its string representation.
func ActorKindFromString(value string) (ActorKind, error) {
	for k, s := range getActorKindStrings() {
		if k != UnknownActorKind && s == value {
			return k, nil
		}
	}
	return UnknownActorKind, errs.NewValueIsInvalidErrorWithCause("actor kind",
		fmt.Errorf("%q is not a known actor kind", value))
}

// Validate checks if the ActorKind value is valid.
func (k ActorKind) Validate() error {
	if k < ActorCustomer || k > ActorSystem {
		return errs.NewValueIsInvalidErrorWithCause("actor kind",
			fmt.Errorf("%d is not a valid actor kind", k))
	}
	return nil
}

// String returns the lowercase name of the actor kind.
func (k ActorKind) String() string {
	if s, ok := getActorKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// SystemActorID returns the fixed identity the platform uses as the actor
// on audit events it generates itself, such as reconciliation findings.
func SystemActorID() kernel.UUID {
	id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	return id
}

// Event is a single immutable entry in the append-only audit log. Events are
// written once and never updated or deleted; the log survives the orders it
// describes.
type Event struct {
	id         kernel.UUID
	eventType  EventType
	actorID    kernel.UUID
	actorKind  ActorKind
	orderID    *kernel.UUID
	metadata   map[string]string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates a validated audit event. The order id is optional:
// platform-level events carry none. Metadata is copied; the caller's map is
// not retained.
func NewEvent(
	id kernel.UUID,
	eventType EventType,
	actorID kernel.UUID,
	actorKind ActorKind,
	orderID *kernel.UUID,
	metadata map[string]string,
	occurredAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		eventType.Validate(),
		actorID.Validate(),
		actorKind.Validate(),
	); err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("occurred at")
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	e := &Event{
		id:         id,
		eventType:  eventType,
		actorID:    actorID,
		actorKind:  actorKind,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}
	if orderID != nil {
		oid := *orderID
		e.orderID = &oid
	}
	if len(metadata) > 0 {
		e.metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			e.metadata[k] = v
		}
	}

	return e, nil
}

// Validate ensures the Event instance was created through NewEvent.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// EventType returns the event classification.
func (e *Event) EventType() EventType {
	return e.eventType
}

// ActorID returns the id of the actor that triggered the event.
func (e *Event) ActorID() kernel.UUID {
	return e.actorID
}

// ActorKind returns the actor classification.
func (e *Event) ActorKind() ActorKind {
	return e.actorKind
}

// OrderID returns the related order id, or nil for platform-level events.
func (e *Event) OrderID() *kernel.UUID {
	if e.orderID == nil {
		return nil
	}
	oid := *e.orderID
	return &oid
}

// Metadata returns a copy of the event's key-value payload.
func (e *Event) Metadata() map[string]string {
	if len(e.metadata) == 0 {
		return nil
	}
	copied := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		copied[k] = v
	}
	return copied
}

// OccurredAt returns when the event happened.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}
