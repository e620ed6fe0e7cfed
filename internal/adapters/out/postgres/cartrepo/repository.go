package cartrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"gorm.io/gorm"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AddLine saves one cart line for the customer. Adding a product already in
// the cart replaces its line.
func (r *GormCartRepository) AddLine(ctx context.Context, customerID kernel.UUID, line product.CartLine) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(customerID, line)
	return r.db.WithContext(ctx).Save(&dto).Error
}

// GetLines retrieves the customer's cart lines. An empty cart yields an
// empty slice.
func (r *GormCartRepository) GetLines(ctx context.Context, customerID kernel.UUID) ([]product.CartLine, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("product_name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	lines := make([]product.CartLine, 0, len(dtos))
	for _, dto := range dtos {
		line, lineErr := toDomain(dto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Clear removes all lines from the customer's cart.
func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Delete(&CartLineDTO{}).Error
}
