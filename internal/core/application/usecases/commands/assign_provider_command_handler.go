package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// AssignProviderCommandHandler assigns the fulfilling provider to an order
// after creation. The resolved provider kind must serve the order's
// vertical; the aggregate decides whether the assignment is a first
// assignment or a reassignment.
type AssignProviderCommandHandler struct {
	uowFactory OrderUoWFactory
	providers  ports.ProviderResolver
	auditLog   ports.AuditLog
	notifier   ports.NotificationPublisher
	logger     *slog.Logger
}

// NewAssignProviderCommandHandler creates a handler for provider assignment
// operations.
func NewAssignProviderCommandHandler(
	uowFactory OrderUoWFactory,
	providers ports.ProviderResolver,
	auditLog ports.AuditLog,
	notifier ports.NotificationPublisher,
	logger *slog.Logger,
) AssignProviderCommandHandler {
	return AssignProviderCommandHandler{
		uowFactory: uowFactory,
		providers:  providers,
		auditLog:   auditLog,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the provider assignment command.
//
// The order is loaded, the provider resolved against its vertical, and the
// assignment applied through the aggregate. The repository update is
// guarded by the aggregate's version, so a concurrent writer winning the
// race surfaces errs.ErrConcurrentModification.
func (h *AssignProviderCommandHandler) Handle(ctx context.Context, cmd AssignProviderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	providerRef, err := resolveProviderRef(ctx, h.providers, cmd.ProviderID(), aggregate.OrderType())
	if err != nil {
		return err
	}

	if err = aggregate.AssignProvider(providerRef, cmd.ActorID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.collectEffects(cmd, aggregate, providerRef).Drain(ctx)
	return nil
}

func (h *AssignProviderCommandHandler) collectEffects(
	cmd AssignProviderCommand,
	aggregate *order.Order,
	providerRef order.ProviderRef,
) *postCommitEffects {
	effects := newPostCommitEffects(h.logger)
	orderID := aggregate.ID()

	kind := audit.ActorSystem
	if aggregate.CustomerID().IsEqual(cmd.ActorID()) {
		kind = audit.ActorCustomer
	}

	effects.Add("audit status_changed", auditEffect(h.auditLog, audit.StatusChanged,
		cmd.ActorID(), kind, &orderID, map[string]string{
			"status":        aggregate.Status().String(),
			"provider_id":   providerRef.ID().String(),
			"provider_kind": providerRef.Kind().String(),
		}))

	effects.Add("notify customer", notifyEffect(h.notifier, ports.Notification{
		UserID:   aggregate.CustomerID(),
		Title:    "Order update",
		Message:  "A provider has been assigned to your order " + aggregate.OrderNumber().String() + ".",
		Category: "provider_assigned",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))
	effects.Add("notify provider", notifyEffect(h.notifier, ports.Notification{
		UserID:   providerRef.ID(),
		Title:    "New assignment",
		Message:  "You have been assigned order " + aggregate.OrderNumber().String() + ".",
		Category: "provider_assigned",
		Metadata: map[string]string{"order_id": orderID.String()},
	}))

	return effects
}
