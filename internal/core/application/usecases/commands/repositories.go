// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit effects.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// CartRepoFactory provides access to cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages transactions spanning orders, products, and carts.
	// Used by marketplace checkout where the order creation, the stock
	// decrements, and the cart clearing must commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   productRepo := uow.ProductRepository()
	//   cartRepo := uow.CartRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		CartRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
