package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ProviderRecord is the resolved view of a provider: identity, kind, and the
// optional stored commission override. CommissionRate is nil for providers
// settling at the vertical default.
type ProviderRecord struct {
	ID             kernel.UUID
	Kind           order.ProviderKind
	Name           string
	CommissionRate *decimal.Decimal
	Active         bool
}

// ProviderResolver looks up providers across the five provider kinds
// through a single interface.
type ProviderResolver interface {
	// Resolve retrieves a provider by its unique identifier.
	// Returns errs.ObjectNotFoundError if absent.
	Resolve(ctx context.Context, id kernel.UUID) (ProviderRecord, error)

	// Add persists a new provider record.
	Add(ctx context.Context, record ProviderRecord) error
}
