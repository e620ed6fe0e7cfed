package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order read model by id.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order query: %w", err)
//	}
//
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", order.OrderNumber, order.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the flat read model of one order. Monetary
// figures are returned as decimals, enums as their string form.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	OrderNumber      string
	OrderType        string
	Status           string
	PaymentStatus    string
	CustomerID       kernel.UUID
	ProviderID       *kernel.UUID
	ProviderKind     string
	GrossAmount      decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	ProviderPayout   decimal.Decimal
	History          []GetOrderHistoryEntry
	CompletedAt      *time.Time
	Version          int
}

// GetOrderHistoryEntry is one status transition in an order's history,
// oldest first.
type GetOrderHistoryEntry struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
	Reason    string    `json:"reason,omitempty"`
}
