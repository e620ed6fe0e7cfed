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

// CreateQuotedOrderCommandHandler handles creation of sourcing and coaching
// orders. There is no pricing step: the gross amount was agreed with the
// provider up front, so the handler only resolves the provider, computes the
// commission split, and persists.
type CreateQuotedOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	providers  ports.ProviderResolver
	calculator services.CommissionCalculator
	auditLog   ports.AuditLog
	notifier   ports.NotificationPublisher
	logger     *slog.Logger
}

// NewCreateQuotedOrderCommandHandler creates a handler for quote-based order
// creation operations.
func NewCreateQuotedOrderCommandHandler(
	uowFactory OrderUoWFactory,
	providers ports.ProviderResolver,
	calculator services.CommissionCalculator,
	auditLog ports.AuditLog,
	notifier ports.NotificationPublisher,
	logger *slog.Logger,
) CreateQuotedOrderCommandHandler {
	return CreateQuotedOrderCommandHandler{
		uowFactory: uowFactory,
		providers:  providers,
		calculator: calculator,
		auditLog:   auditLog,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the quoted order creation command.
//
// The provider is resolved and must serve the requested vertical; sourcing
// agents may carry a commission override, import coaches settle at the
// coaching default. The provider is assigned immediately, so the initial
// persisted status is provider_assigned.
func (h *CreateQuotedOrderCommandHandler) Handle(ctx context.Context, cmd CreateQuotedOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	providerRef, err := resolveProviderRef(ctx, h.providers, cmd.ProviderID(), cmd.OrderType())
	if err != nil {
		return err
	}

	details, err := h.buildDetails(cmd)
	if err != nil {
		return err
	}

	number, err := kernel.NewOrderNumber(cmd.OrderType().NumberPrefix(), now)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), number, cmd.OrderType(),
		cmd.CustomerID(), cmd.GrossAmount(), details, now)
	if err != nil {
		return err
	}

	if err = aggregate.AssignProvider(providerRef, cmd.CustomerID(), now); err != nil {
		return err
	}

	commission := h.calculator.Calculate(ctx, cmd.OrderType(), cmd.GrossAmount(), &providerRef)
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

	h.collectEffects(aggregate, commission, providerRef).Drain(ctx)
	return nil
}

func (h *CreateQuotedOrderCommandHandler) buildDetails(cmd CreateQuotedOrderCommand) (order.Details, error) {
	if cmd.OrderType() == order.Sourcing {
		return order.NewSourcingDetails(cmd.Requirements())
	}
	return order.NewCoachingDetails(cmd.Topic(), cmd.SessionAt(), cmd.DurationMinutes())
}

func (h *CreateQuotedOrderCommandHandler) collectEffects(
	aggregate *order.Order,
	commission services.CommissionResult,
	providerRef order.ProviderRef,
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
		Message:  "Your order " + aggregate.OrderNumber().String() + " has been placed.",
		Category: "order_created",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))
	effects.Add("notify provider", notifyEffect(h.notifier, ports.Notification{
		UserID:   providerRef.ID(),
		Title:    "New engagement",
		Message:  "You have been engaged for order " + aggregate.OrderNumber().String() + ".",
		Category: "order_created",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))

	return effects
}
