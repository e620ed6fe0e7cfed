package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order guarded by its optimistic-concurrency
// version. The row is only written when the stored version still matches
// the version the aggregate was loaded with; the write bumps it by one.
// A lost race surfaces as errs.ErrConcurrentModification.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order by ID, including soft-deleted orders.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all orders in a non-terminal status, oldest first.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN (?, ?, ?) AND NOT soft_deleted",
			order.Completed.String(), order.Cancelled.String(), order.Failed.String()).
		Order("order_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

// GetAllCompleted retrieves all completed orders for reconciliation.
func (r *GormOrderRepository) GetAllCompleted(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND NOT soft_deleted", order.Completed.String()).
		Order("order_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
