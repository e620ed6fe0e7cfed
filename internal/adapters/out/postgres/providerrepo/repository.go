package providerrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProviderRepository implements ports.ProviderResolver using GORM. It
// also serves as the commission engine's rate source: the stored override
// rate of a provider is what OverrideRate reports.
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GORM provider repository.
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// Resolve retrieves a provider record by ID.
func (r *GormProviderRepository) Resolve(ctx context.Context, id kernel.UUID) (ports.ProviderRecord, error) {
	if err := id.Validate(); err != nil {
		return ports.ProviderRecord{}, err
	}

	var dto ProviderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProviderRecord{}, errs.NewObjectNotFoundError("provider", id.String())
		}
		return ports.ProviderRecord{}, err
	}

	return toRecord(dto)
}

// Add saves a new provider record to the database.
func (r *GormProviderRepository) Add(ctx context.Context, record ports.ProviderRecord) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}
	if err := record.Kind.Validate(); err != nil {
		return err
	}

	dto := fromRecord(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// OverrideRate reports the provider's stored commission override. Inactive
// providers and providers without a stored rate report no override.
func (r *GormProviderRepository) OverrideRate(ctx context.Context, ref order.ProviderRef) (decimal.Decimal, bool, error) {
	record, err := r.Resolve(ctx, ref.ID())
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if !record.Active || record.CommissionRate == nil {
		return decimal.Decimal{}, false, nil
	}
	return *record.CommissionRate, true, nil
}
