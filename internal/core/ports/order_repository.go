// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, the provider
// resolver, the audit log, and the notification publisher. These interfaces
// enable dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate guarded by its
	// optimistic-concurrency version. If the stored version no longer
	// matches the aggregate's loaded version, the update is rejected with
	// errs.ErrConcurrentModification and no state is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// soft-deleted orders. Returns errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders in a non-terminal status, excluding
	// soft-deleted orders, ordered by creation time.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllCompleted retrieves all completed orders, excluding soft-deleted
	// orders. Used by commission reconciliation.
	GetAllCompleted(ctx context.Context) ([]*order.Order, error)
}
