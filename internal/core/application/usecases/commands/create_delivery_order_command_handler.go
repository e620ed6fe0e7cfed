package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CreateDeliveryOrderCommandHandler handles the business logic for delivery
// order creation: pricing the route, building the aggregate, computing the
// commission split, and persisting, with audit and notification effects
// after commit.
//
// Example:
//
//	handler := NewCreateDeliveryOrderCommandHandler(uowFactory, resolver,
//	    calculator, pricer, auditLog, notifier, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery order creation failed: %w", err)
//	}
type CreateDeliveryOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	providers  ports.ProviderResolver
	calculator services.CommissionCalculator
	pricer     services.DeliveryPricer
	auditLog   ports.AuditLog
	notifier   ports.NotificationPublisher
	logger     *slog.Logger
}

// NewCreateDeliveryOrderCommandHandler creates a handler for delivery order
// creation operations.
func NewCreateDeliveryOrderCommandHandler(
	uowFactory OrderUoWFactory,
	providers ports.ProviderResolver,
	calculator services.CommissionCalculator,
	pricer services.DeliveryPricer,
	auditLog ports.AuditLog,
	notifier ports.NotificationPublisher,
	logger *slog.Logger,
) CreateDeliveryOrderCommandHandler {
	return CreateDeliveryOrderCommandHandler{
		uowFactory: uowFactory,
		providers:  providers,
		calculator: calculator,
		pricer:     pricer,
		auditLog:   auditLog,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the delivery order creation command.
//
// The route is priced with the injected pricer, the order is created with
// the computed gross amount, and a pre-supplied driver or provider is
// assigned before persisting, which makes the initial persisted status
// provider_assigned instead of created. The commission split is computed
// and frozen into the aggregate, and audit plus notification effects run
// after the transaction commits.
func (h *CreateDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	distanceKm := h.pricer.Distance(cmd.Pickup(), cmd.Dropoff())
	etaMinutes := h.pricer.EstimatedTime(distanceKm, cmd.Vehicle())
	price := h.pricer.Price(distanceKm, cmd.WeightKg(), cmd.Vehicle())

	details, err := order.NewDeliveryDetails(cmd.Pickup(), cmd.Dropoff(),
		cmd.Description(), cmd.WeightKg(), cmd.Vehicle(), distanceKm, etaMinutes)
	if err != nil {
		return err
	}

	number, err := kernel.NewOrderNumber(order.Delivery.NumberPrefix(), now)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), number, order.Delivery,
		cmd.CustomerID(), price, details, now)
	if err != nil {
		return err
	}

	providerRef, err := h.resolveAssignment(ctx, cmd)
	if err != nil {
		return err
	}
	if providerRef != nil {
		if err = aggregate.AssignProvider(*providerRef, cmd.CustomerID(), now); err != nil {
			return err
		}
	}

	commission := h.calculator.Calculate(ctx, order.Delivery, price, providerRef)
	if err = aggregate.SetCommission(commission.Rate, commission.Amount, commission.Payout); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.collectEffects(aggregate, commission).Drain(ctx)
	return nil
}

// resolveAssignment returns the provider reference to pre-assign, or nil
// when the order should stay unassigned. An explicit driver id takes
// precedence over a generic provider id.
func (h *CreateDeliveryOrderCommandHandler) resolveAssignment(
	ctx context.Context,
	cmd CreateDeliveryOrderCommand,
) (*order.ProviderRef, error) {
	if cmd.DriverID() != nil {
		ref, err := order.NewProviderRef(*cmd.DriverID(), order.Driver)
		if err != nil {
			return nil, err
		}
		return &ref, nil
	}
	if cmd.ProviderID() != nil {
		ref, err := resolveProviderRef(ctx, h.providers, *cmd.ProviderID(), order.Delivery)
		if err != nil {
			return nil, err
		}
		return &ref, nil
	}
	return nil, nil
}

func (h *CreateDeliveryOrderCommandHandler) collectEffects(
	aggregate *order.Order,
	commission services.CommissionResult,
) *postCommitEffects {
	effects := newPostCommitEffects(h.logger)
	orderID := aggregate.ID()

	effects.Add("audit order_created", auditEffect(h.auditLog, audit.OrderCreated,
		aggregate.CustomerID(), audit.ActorCustomer, &orderID, map[string]string{
			"order_number": aggregate.OrderNumber().String(),
			"order_type":   aggregate.OrderType().String(),
			"gross":        aggregate.GrossAmount().String(),
		}))
	effects.Add("audit commission_computed", auditEffect(h.auditLog, audit.CommissionComputed,
		aggregate.CustomerID(), audit.ActorSystem, &orderID, map[string]string{
			"rate":   commission.Rate.String(),
			"amount": commission.Amount.String(),
			"payout": commission.Payout.String(),
		}))
	effects.Add("notify customer", notifyEffect(h.notifier, ports.Notification{
		UserID:   aggregate.CustomerID(),
		Title:    "Order placed",
		Message:  "Your delivery order " + aggregate.OrderNumber().String() + " has been placed.",
		Category: "order_created",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))

	return effects
}
