package product

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory functions.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

	// ErrInsufficientStock is the sentinel for checkout attempts exceeding a
	// product's available stock. Use errors.As with *InsufficientStockError
	// to recover the product name and quantities.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a requested quantity that exceeds the
// available stock of a product. The message names the product so checkout
// callers can surface it directly.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

// NewInsufficientStockError creates an InsufficientStockError for the given
// product and quantities.
func NewInsufficientStockError(productName string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductName: productName,
		Requested:   requested,
		Available:   available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s has %d in stock, %d requested",
		ErrInsufficientStock, e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is a marketplace catalog entry owned by a seller. Stock is the
// source of truth for checkout: decrements happen through a conditional
// update at the persistence layer so concurrent checkouts cannot oversell.
type Product struct {
	id       kernel.UUID
	sellerID kernel.UUID
	name     string
	price    kernel.Money
	stock    int
	active   bool

	guard guard.ConstructorGuard
}

// NewProduct creates a new active Product.
func NewProduct(id, sellerID kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	p := &Product{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setSellerID(sellerID),
		p.setName(name),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	p.price = price
	return p, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(id, sellerID kernel.UUID, name string, price kernel.Money, stock int, active bool) (*Product, error) {
	p, err := NewProduct(id, sellerID, name, price, stock)
	if err != nil {
		return nil, err
	}
	p.active = active
	return p, nil
}

// Validate ensures the Product instance was created through a factory
// function.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SellerID returns the owning seller's id.
func (p *Product) SellerID() kernel.UUID {
	return p.sellerID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Stock returns the available quantity.
func (p *Product) Stock() int {
	return p.stock
}

// IsActive reports whether the product may be ordered.
func (p *Product) IsActive() bool {
	return p.active
}

// Deactivate removes the product from sale without deleting it.
func (p *Product) Deactivate() {
	p.active = false
}

// CheckAvailability verifies the product is active and has at least the
// requested quantity in stock. Returns an *InsufficientStockError when the
// stock does not cover the request.
func (p *Product) CheckAvailability(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if !p.active {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("%s is not available for sale", p.name))
	}
	if quantity > p.stock {
		return NewInsufficientStockError(p.name, quantity, p.stock)
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	p.sellerID = sellerID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
