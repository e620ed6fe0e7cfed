package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order row straight from the database,
// bypassing the aggregate. Use it for display and API reads; mutations go
// through the command handlers.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// with the requested id exists or it was soft deleted.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			order_type,
			status,
			payment_status,
			customer_id,
			provider_id,
			provider_kind,
			gross_amount,
			commission_rate,
			commission_amount,
			provider_payout,
			history,
			completed_at,
			version
		FROM orders
		WHERE id = ? AND NOT soft_deleted
	`, query.OrderID().String()).Row()

	var (
		resp         GetOrderQueryResponse
		id           uuid.UUID
		customerID   uuid.UUID
		providerID   uuid.NullUUID
		providerKind sql.NullString
		history      []byte
		completedAt  sql.NullTime
	)

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&resp.OrderType,
		&resp.Status,
		&resp.PaymentStatus,
		&customerID,
		&providerID,
		&providerKind,
		&resp.GrossAmount,
		&resp.CommissionRate,
		&resp.CommissionAmount,
		&resp.ProviderPayout,
		&history,
		&completedAt,
		&resp.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if providerID.Valid {
		provider, idErr := kernel.UUIDFromBytes(providerID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.ProviderID = &provider
		resp.ProviderKind = providerKind.String
	}
	if len(history) > 0 {
		if err = json.Unmarshal(history, &resp.History); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}
	if completedAt.Valid {
		at := completedAt.Time
		resp.CompletedAt = &at
	}

	return resp, nil
}
