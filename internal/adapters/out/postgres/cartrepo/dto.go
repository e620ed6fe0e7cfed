// Package cartrepo provides persistence for customer cart lines. Each line
// is a snapshot of the product at add-to-cart time; checkout reads and
// clears the lines inside its transaction.
package cartrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineDTO represents one cart line row. A customer holds at most one
// line per product.
type CartLineDTO struct {
	CustomerID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductName string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Quantity    int             `gorm:"not null"`
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(customerID kernel.UUID, line product.CartLine) CartLineDTO {
	return CartLineDTO{
		CustomerID:  customerID.Bytes(),
		ProductID:   line.ProductID().Bytes(),
		ProductName: line.ProductName(),
		UnitPrice:   line.UnitPrice().Decimal(),
		Quantity:    line.Quantity(),
	}
}

func toDomain(dto CartLineDTO) (product.CartLine, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return product.CartLine{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return product.CartLine{}, err
	}
	return product.RestoreCartLine(productID, dto.ProductName, unitPrice, dto.Quantity)
}
