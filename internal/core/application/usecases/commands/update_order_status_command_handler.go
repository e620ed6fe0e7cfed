package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles fulfilment status transitions.
// Legality is delegated to the aggregate's state machine; the handler adds
// the completion side effects, the optimistic-concurrency write, and the
// post-commit audit and notification effects.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.CommissionCalculator
	auditLog   ports.AuditLog
	notifier   ports.NotificationPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transition
// operations.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	calculator services.CommissionCalculator,
	auditLog ports.AuditLog,
	notifier ports.NotificationPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		auditLog:   auditLog,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the status transition command.
//
// On transition to completed the commission split is recomputed once with
// the provider's current override rate and then frozen; cancellation and
// failure freeze the stored split untouched. The repository update is
// guarded by the aggregate's version: a concurrent writer winning the race
// surfaces errs.ErrConcurrentModification, which is retryable by the
// caller.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	// the recompute decision must be made before the transition flips the
	// order terminal
	canRecompute := aggregate.CanModifyCommission()

	if err = aggregate.TransitionTo(cmd.NewStatus(), cmd.ActorID(), cmd.Reason(), now); err != nil {
		return err
	}

	var recomputed *services.CommissionResult
	if cmd.NewStatus() == order.Completed && canRecompute {
		commission := h.calculator.Calculate(ctx, aggregate.OrderType(),
			aggregate.GrossAmount(), aggregate.ProviderRef())
		if err = aggregate.SetCommission(commission.Rate, commission.Amount, commission.Payout); err != nil {
			return err
		}
		recomputed = &commission
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.collectEffects(cmd, aggregate, recomputed).Drain(ctx)
	return nil
}

// actorKind classifies the requesting actor structurally: the order's
// customer, its assigned provider, or the platform for anyone else.
func actorKind(aggregate *order.Order, cmd UpdateOrderStatusCommand) audit.ActorKind {
	if aggregate.CustomerID().IsEqual(cmd.ActorID()) {
		return audit.ActorCustomer
	}
	if ref := aggregate.ProviderRef(); ref != nil && ref.ID().IsEqual(cmd.ActorID()) {
		return audit.ActorProvider
	}
	return audit.ActorSystem
}

func (h *UpdateOrderStatusCommandHandler) collectEffects(
	cmd UpdateOrderStatusCommand,
	aggregate *order.Order,
	recomputed *services.CommissionResult,
) *postCommitEffects {
	effects := newPostCommitEffects(h.logger)
	orderID := aggregate.ID()
	kind := actorKind(aggregate, cmd)

	effects.Add("audit status_changed", auditEffect(h.auditLog, audit.StatusChanged,
		cmd.ActorID(), kind, &orderID, map[string]string{
			"status": aggregate.Status().String(),
			"reason": cmd.Reason(),
		}))

	if aggregate.Status() == order.Completed {
		metadata := map[string]string{
			"gross":  aggregate.GrossAmount().String(),
			"payout": aggregate.ProviderPayout().String(),
			"amount": aggregate.CommissionAmount().String(),
		}
		if recomputed != nil {
			metadata["rate"] = recomputed.Rate.String()
		}
		effects.Add("audit order_completed", auditEffect(h.auditLog, audit.OrderCompleted,
			cmd.ActorID(), kind, &orderID, metadata))
	}

	message := "Order " + aggregate.OrderNumber().String() + " is now " + aggregate.Status().String() + "."
	effects.Add("notify customer", notifyEffect(h.notifier, ports.Notification{
		UserID:   aggregate.CustomerID(),
		Title:    "Order update",
		Message:  message,
		Category: "status_changed",
		Metadata: map[string]string{"order_id": orderID.String(), "status": aggregate.Status().String()},
	}))
	if ref := aggregate.ProviderRef(); ref != nil {
		effects.Add("notify provider", notifyEffect(h.notifier, ports.Notification{
			UserID:   ref.ID(),
			Title:    "Order update",
			Message:  message,
			Category: "status_changed",
			Metadata: map[string]string{"order_id": orderID.String(), "status": aggregate.Status().String()},
		}))
	}

	return effects
}
