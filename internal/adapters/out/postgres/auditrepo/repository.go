package auditrepo

import (
	"context"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GormAuditLog implements ports.AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append persists a new audit event.
func (l *GormAuditLog) Append(ctx context.Context, event *audit.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}

// Query retrieves events matching the filter, oldest first. Zero-value
// filter fields are ignored.
func (l *GormAuditLog) Query(ctx context.Context, filter ports.AuditFilter) ([]*audit.Event, error) {
	tx := l.db.WithContext(ctx).Model(&EventDTO{})

	if filter.OrderID != nil {
		tx = tx.Where("order_id = ?", filter.OrderID.Bytes())
	}
	if filter.ActorID != nil {
		tx = tx.Where("actor_id = ?", filter.ActorID.Bytes())
	}
	if err := filter.EventType.Validate(); err == nil {
		tx = tx.Where("event_type = ?", filter.EventType.String())
	}
	if !filter.From.IsZero() {
		tx = tx.Where("occurred_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		tx = tx.Where("occurred_at < ?", filter.To)
	}

	var dtos []EventDTO
	if err := tx.Order("occurred_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*audit.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
