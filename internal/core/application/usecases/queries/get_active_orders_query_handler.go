package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler lists orders in a non-terminal status from
// the database. Soft-deleted orders are excluded.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order
// listings.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order number so
// consecutive sweeps see a stable ordering.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_number,
			order_type,
			status,
			customer_id,
			gross_amount
		FROM orders
		WHERE status NOT IN (?, ?, ?) AND NOT soft_deleted
	`
	args := []any{
		order.Completed.String(),
		order.Cancelled.String(),
		order.Failed.String(),
	}
	if orderType := query.OrderType(); orderType != nil {
		sql += " AND order_type = ?"
		args = append(args, orderType.String())
	}
	sql += " ORDER BY order_number"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp       GetActiveOrdersQueryResponse
			id         uuid.UUID
			customerID uuid.UUID
		)

		if err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.OrderType,
			&resp.Status,
			&customerID,
			&resp.GrossAmount,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
