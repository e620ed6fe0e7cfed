// Package auditrepo provides the append-only persistence of audit events.
// Rows are inserted once and never updated or deleted.
package auditrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting audit events.
type EventDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType  string     `gorm:"index"`
	ActorID    uuid.UUID  `gorm:"type:uuid;index"`
	ActorKind  string     `gorm:"not null"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Metadata   []byte     `gorm:"type:jsonb"`
	OccurredAt time.Time  `gorm:"index"`
}

// TableName specifies the database table name for audit events.
func (EventDTO) TableName() string {
	return "audit_events"
}

func fromDomain(event *audit.Event) (EventDTO, error) {
	dto := EventDTO{
		ID:         event.ID().Bytes(),
		EventType:  event.EventType().String(),
		ActorID:    event.ActorID().Bytes(),
		ActorKind:  event.ActorKind().String(),
		OccurredAt: event.OccurredAt(),
	}

	if orderID := event.OrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.OrderID = &raw
	}
	if metadata := event.Metadata(); len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return EventDTO{}, err
		}
		dto.Metadata = raw
	}

	return dto, nil
}

func toDomain(dto EventDTO) (*audit.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	eventType, err := audit.EventTypeFromString(dto.EventType)
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}
	actorKind, err := audit.ActorKindFromString(dto.ActorKind)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oid, oidErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if oidErr != nil {
			return nil, oidErr
		}
		orderID = &oid
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return audit.NewEvent(id, eventType, actorID, actorKind, orderID, metadata, dto.OccurredAt)
}
