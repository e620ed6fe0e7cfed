package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for marketplace
// products.
type ProductRepository interface {
	// Add persists a new product to storage.
	Add(ctx context.Context, p *product.Product) error

	// Get retrieves a product by its unique identifier.
	// Returns errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// DecrementStock atomically decrements a product's stock by quantity,
	// only if the available stock covers it. The check and the decrement are
	// a single statement so concurrent checkouts cannot oversell. Returns a
	// *product.InsufficientStockError when the stock does not cover the
	// request.
	DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error
}

// CartRepository defines the persistence contract for customer carts.
// A cart is the set of line snapshots a customer accumulated before
// checkout.
type CartRepository interface {
	// GetLines retrieves the customer's cart lines. An empty cart returns
	// an empty slice, not an error.
	GetLines(ctx context.Context, customerID kernel.UUID) ([]product.CartLine, error)

	// Clear removes all lines from the customer's cart. Runs inside the
	// checkout transaction so the cart empties if and only if the order is
	// created.
	Clear(ctx context.Context, customerID kernel.UUID) error
}
