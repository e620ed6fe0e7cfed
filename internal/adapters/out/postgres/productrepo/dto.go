// Package productrepo provides persistence for marketplace catalog
// products, including the atomic stock decrement used by checkout.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting catalog
// products.
type ProductDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID uuid.UUID       `gorm:"type:uuid;index"`
	Name     string          `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Stock    int             `gorm:"not null"`
	Active   bool            `gorm:"not null;default:true"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID().Bytes(),
		SellerID: p.SellerID().Bytes(),
		Name:     p.Name(),
		Price:    p.Price().Decimal(),
		Stock:    p.Stock(),
		Active:   p.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, sellerID, dto.Name, price, dto.Stock, dto.Active)
}
