// Package providerrepo provides persistence for provider records across
// the five provider kinds, including the optional stored commission
// override consulted by the commission engine.
package providerrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProviderDTO represents the database structure for persisting provider
// records.
type ProviderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind           string    `gorm:"index"`
	Name           string
	CommissionRate *decimal.Decimal `gorm:"type:numeric(5,2)"`
	Active         bool             `gorm:"not null;default:true"`
}

// TableName specifies the database table name for provider entities.
func (ProviderDTO) TableName() string {
	return "providers"
}

func fromRecord(record ports.ProviderRecord) ProviderDTO {
	dto := ProviderDTO{
		ID:     record.ID.Bytes(),
		Kind:   record.Kind.String(),
		Name:   record.Name,
		Active: record.Active,
	}
	if record.CommissionRate != nil {
		rate := *record.CommissionRate
		dto.CommissionRate = &rate
	}
	return dto
}

func toRecord(dto ProviderDTO) (ports.ProviderRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ProviderRecord{}, err
	}
	kind, err := order.ProviderKindFromString(dto.Kind)
	if err != nil {
		return ports.ProviderRecord{}, err
	}

	record := ports.ProviderRecord{
		ID:     id,
		Kind:   kind,
		Name:   dto.Name,
		Active: dto.Active,
	}
	if dto.CommissionRate != nil {
		rate := *dto.CommissionRate
		record.CommissionRate = &rate
	}
	return record, nil
}
