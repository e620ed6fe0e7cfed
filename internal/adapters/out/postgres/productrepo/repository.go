package productrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DecrementStock atomically decrements the product's stock. The guard is in
// the statement itself so two concurrent checkouts cannot both take the
// last unit.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
	`, quantity, id.Bytes(), quantity)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		p, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		return product.NewInsufficientStockError(p.Name(), quantity, p.Stock())
	}

	return nil
}
