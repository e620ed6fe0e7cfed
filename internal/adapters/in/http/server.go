// Package http provides the inbound HTTP adapter: echo handlers binding
// wire DTOs to commands and queries, with core error kinds mapped to
// precise HTTP statuses.
package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryOrderHandler    commands.CreateDeliveryOrderCommandHandler
	createMarketplaceOrderHandler commands.CreateMarketplaceOrderCommandHandler
	createQuotedOrderHandler      commands.CreateQuotedOrderCommandHandler
	assignProviderHandler         commands.AssignProviderCommandHandler
	updateOrderStatusHandler      commands.UpdateOrderStatusCommandHandler

	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getAuditTrailHandler   queries.GetAuditTrailQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createDeliveryOrderHandler commands.CreateDeliveryOrderCommandHandler,
	createMarketplaceOrderHandler commands.CreateMarketplaceOrderCommandHandler,
	createQuotedOrderHandler commands.CreateQuotedOrderCommandHandler,
	assignProviderHandler commands.AssignProviderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getAuditTrailHandler queries.GetAuditTrailQueryHandler,
) *Server {
	return &Server{
		createDeliveryOrderHandler:    createDeliveryOrderHandler,
		createMarketplaceOrderHandler: createMarketplaceOrderHandler,
		createQuotedOrderHandler:      createQuotedOrderHandler,
		assignProviderHandler:         assignProviderHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		getOrderHandler:               getOrderHandler,
		getActiveOrdersHandler:        getActiveOrdersHandler,
		getAuditTrailHandler:          getAuditTrailHandler,
	}
}

// RegisterRoutes wires the server's handlers into the echo router.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/delivery", s.CreateDeliveryOrder)
	api.POST("/orders/marketplace", s.CreateMarketplaceOrder)
	api.POST("/orders/quoted", s.CreateQuotedOrder)
	api.PATCH("/orders/:id/provider", s.AssignProvider)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/audit", s.GetAuditTrail)

	e.GET("/health", s.Health)
}

// CreateDeliveryOrder handles POST /api/v1/orders/delivery.
func (s *Server) CreateDeliveryOrder(ctx echo.Context) error {
	var req createDeliveryOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}
	pickup, err := kernel.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := kernel.NewGeoPoint(req.Dropoff.Latitude, req.Dropoff.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}
	vehicle, err := order.VehicleKindFromString(req.Vehicle)
	if err != nil {
		return writeError(ctx, err)
	}
	driverID, err := parseOptionalUUID(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}
	providerID, err := parseOptionalUUID(req.ProviderID)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryOrderCommand(orderID, customerID,
		pickup, dropoff, req.Description, req.WeightKg, vehicle, driverID, providerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createDeliveryOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{OrderID: orderID.String()})
}

// CreateMarketplaceOrder handles POST /api/v1/orders/marketplace. The body
// carries no lines: the order is checked out from the customer's cart.
func (s *Server) CreateMarketplaceOrder(ctx echo.Context) error {
	var req createMarketplaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}
	pickup, err := parseOptionalGeoPoint(req.Pickup)
	if err != nil {
		return writeError(ctx, err)
	}
	destination, err := parseOptionalGeoPoint(req.Destination)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateMarketplaceOrderCommand(orderID, customerID, pickup, destination)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createMarketplaceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{OrderID: orderID.String()})
}

// CreateQuotedOrder handles POST /api/v1/orders/quoted for the sourcing and
// coaching verticals.
func (s *Server) CreateQuotedOrder(ctx echo.Context) error {
	var req createQuotedOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}
	providerID, err := kernel.UUIDFromString(req.ProviderID)
	if err != nil {
		return writeError(ctx, err)
	}
	amount, err := decimal.NewFromString(req.GrossAmount)
	if err != nil {
		return writeBadRequest(ctx, "invalid gross amount")
	}
	grossAmount, err := kernel.NewMoney(amount)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	var cmd commands.CreateQuotedOrderCommand
	switch req.OrderType {
	case order.Sourcing.String():
		cmd, err = commands.NewCreateSourcingOrderCommand(orderID, customerID,
			providerID, grossAmount, req.Requirements)
	case order.Coaching.String():
		cmd, err = commands.NewCreateCoachingOrderCommand(orderID, customerID,
			providerID, grossAmount, req.Topic, req.SessionAt, req.DurationMinutes)
	default:
		return writeBadRequest(ctx, "order type must be sourcing or coaching")
	}
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createQuotedOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{OrderID: orderID.String()})
}

// AssignProvider handles PATCH /api/v1/orders/:id/provider.
func (s *Server) AssignProvider(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignProviderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	providerID, err := kernel.UUIDFromString(req.ProviderID)
	if err != nil {
		return writeError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignProviderCommand(orderID, providerID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignProviderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus, actorID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := orderResponse{
		ID:               result.ID.String(),
		OrderNumber:      result.OrderNumber,
		OrderType:        result.OrderType,
		Status:           result.Status,
		PaymentStatus:    result.PaymentStatus,
		CustomerID:       result.CustomerID.String(),
		ProviderKind:     result.ProviderKind,
		GrossAmount:      result.GrossAmount.StringFixed(2),
		CommissionRate:   result.CommissionRate.String(),
		CommissionAmount: result.CommissionAmount.StringFixed(2),
		ProviderPayout:   result.ProviderPayout.StringFixed(2),
		CompletedAt:      result.CompletedAt,
		Version:          result.Version,
	}
	if result.ProviderID != nil {
		providerID := result.ProviderID.String()
		resp.ProviderID = &providerID
	}
	resp.History = make([]orderHistoryEntry, 0, len(result.History))
	for _, change := range result.History {
		resp.History = append(resp.History, orderHistoryEntry{
			Status:    change.Status,
			ChangedAt: change.ChangedAt,
			ChangedBy: change.ChangedBy,
			Reason:    change.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetActiveOrders handles GET /api/v1/orders/active. An optional "type"
// query parameter narrows the listing to one vertical.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	var orderType *order.Type
	if raw := ctx.QueryParam("type"); raw != "" {
		parsed, err := order.TypeFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		orderType = &parsed
	}

	query, err := queries.NewGetActiveOrdersQuery(orderType)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]activeOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, activeOrderResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			OrderType:   o.OrderType,
			Status:      o.Status,
			CustomerID:  o.CustomerID.String(),
			GrossAmount: o.GrossAmount.StringFixed(2),
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetAuditTrail handles GET /api/v1/orders/:id/audit. Optional "from" and
// "to" query parameters bound the window, RFC 3339 formatted.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	from, err := parseTimeParam(ctx.QueryParam("from"))
	if err != nil {
		return writeBadRequest(ctx, "from must be RFC 3339 formatted")
	}
	to, err := parseTimeParam(ctx.QueryParam("to"))
	if err != nil {
		return writeBadRequest(ctx, "to must be RFC 3339 formatted")
	}

	query, err := queries.NewGetAuditTrailQuery(orderID, from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	trail, err := s.getAuditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]auditEventResponse, 0, len(trail))
	for _, event := range trail {
		resp = append(resp, auditEventResponse{
			ID:         event.ID.String(),
			EventType:  event.EventType,
			ActorID:    event.ActorID.String(),
			ActorKind:  event.ActorKind,
			Metadata:   event.Metadata,
			OccurredAt: event.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalGeoPoint(dto *geoPointDTO) (*kernel.GeoPoint, error) {
	if dto == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
