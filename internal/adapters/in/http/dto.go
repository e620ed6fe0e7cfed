package http

import "time"

// geoPointDTO is the wire form of a coordinate pair.
type geoPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createDeliveryOrderRequest struct {
	CustomerID  string      `json:"customer_id"`
	Pickup      geoPointDTO `json:"pickup"`
	Dropoff     geoPointDTO `json:"dropoff"`
	Description string      `json:"description"`
	WeightKg    float64     `json:"weight_kg"`
	Vehicle     string      `json:"vehicle"`
	DriverID    *string     `json:"driver_id,omitempty"`
	ProviderID  *string     `json:"provider_id,omitempty"`
}

type createMarketplaceOrderRequest struct {
	CustomerID  string       `json:"customer_id"`
	Pickup      *geoPointDTO `json:"pickup,omitempty"`
	Destination *geoPointDTO `json:"destination,omitempty"`
}

type createQuotedOrderRequest struct {
	OrderType       string    `json:"order_type"`
	CustomerID      string    `json:"customer_id"`
	ProviderID      string    `json:"provider_id"`
	GrossAmount     string    `json:"gross_amount"`
	Requirements    string    `json:"requirements,omitempty"`
	Topic           string    `json:"topic,omitempty"`
	SessionAt       time.Time `json:"session_at,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
}

type updateOrderStatusRequest struct {
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

type assignProviderRequest struct {
	ProviderID string `json:"provider_id"`
	ActorID    string `json:"actor_id"`
}

type orderCreatedResponse struct {
	OrderID string `json:"order_id"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"order_number"`
	OrderType        string              `json:"order_type"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	CustomerID       string              `json:"customer_id"`
	ProviderID       *string             `json:"provider_id,omitempty"`
	ProviderKind     string              `json:"provider_kind,omitempty"`
	GrossAmount      string              `json:"gross_amount"`
	CommissionRate   string              `json:"commission_rate"`
	CommissionAmount string              `json:"commission_amount"`
	ProviderPayout   string              `json:"provider_payout"`
	History          []orderHistoryEntry `json:"history"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	Version          int                 `json:"version"`
}

type orderHistoryEntry struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
	Reason    string    `json:"reason,omitempty"`
}

type activeOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	OrderType   string `json:"order_type"`
	Status      string `json:"status"`
	CustomerID  string `json:"customer_id"`
	GrossAmount string `json:"gross_amount"`
}

type auditEventResponse struct {
	ID         string            `json:"id"`
	EventType  string            `json:"event_type"`
	ActorID    string            `json:"actor_id"`
	ActorKind  string            `json:"actor_kind"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
