package product

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// CartLine is a line in a customer's cart. It snapshots the product name and
// unit price at add-to-cart time: later catalog price changes do not affect
// lines already in a cart.
type CartLine struct {
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int
}

// NewCartLine creates a validated cart line snapshotting the given product.
func NewCartLine(p *Product, quantity int) (CartLine, error) {
	if err := p.Validate(); err != nil {
		return CartLine{}, err
	}
	if quantity <= 0 {
		return CartLine{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return CartLine{
		productID:   p.ID(),
		productName: p.Name(),
		unitPrice:   p.Price(),
		quantity:    quantity,
	}, nil
}

// RestoreCartLine reconstructs a cart line from persistence.
func RestoreCartLine(productID kernel.UUID, productName string, unitPrice kernel.Money, quantity int) (CartLine, error) {
	if err := productID.Validate(); err != nil {
		return CartLine{}, err
	}
	if productName == "" {
		return CartLine{}, errs.NewValueIsRequiredError("product name")
	}
	if quantity <= 0 {
		return CartLine{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return CartLine{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
	}, nil
}

// ProductID returns the snapshotted product id.
func (l CartLine) ProductID() kernel.UUID { return l.productID }

// ProductName returns the product name captured at add-to-cart time.
func (l CartLine) ProductName() string { return l.productName }

// UnitPrice returns the price captured at add-to-cart time.
func (l CartLine) UnitPrice() kernel.Money { return l.unitPrice }

// Quantity returns the quantity in the cart.
func (l CartLine) Quantity() int { return l.quantity }

// Total returns unit price times quantity.
func (l CartLine) Total() kernel.Money {
	return l.unitPrice.MulInt(l.quantity)
}
