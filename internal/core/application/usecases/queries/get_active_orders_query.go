package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still moving through
// fulfilment, optionally narrowed to one vertical.
//
// Example:
//
//	query := NewGetActiveOrdersQuery(nil)
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetActiveOrdersQuery struct {
	orderType *order.Type

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for orders in a non-terminal
// status. Pass a nil order type to span all verticals.
func NewGetActiveOrdersQuery(orderType *order.Type) (GetActiveOrdersQuery, error) {
	query := GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
	if orderType != nil {
		if err := orderType.Validate(); err != nil {
			return GetActiveOrdersQuery{}, err
		}
		t := *orderType
		query.orderType = &t
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// OrderType returns the vertical filter, or nil for all verticals.
func (q GetActiveOrdersQuery) OrderType() *order.Type {
	if q.orderType == nil {
		return nil
	}
	t := *q.orderType
	return &t
}

// GetActiveOrdersQueryResponse is one row of the active orders listing.
type GetActiveOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	OrderType   string
	Status      string
	CustomerID  kernel.UUID
	GrossAmount decimal.Decimal
}
