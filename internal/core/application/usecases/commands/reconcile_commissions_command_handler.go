package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ReconcileCommissionsCommandHandler sweeps completed orders and flags any
// whose stored commission split no longer reassembles the gross amount. It
// is the financial safety net behind the freeze rules: a mismatch means a
// writer bypassed the aggregate.
type ReconcileCommissionsCommandHandler struct {
	uowFactory OrderUoWFactory
	auditLog   ports.AuditLog
	logger     *slog.Logger
}

// NewReconcileCommissionsCommandHandler creates a handler for commission
// reconciliation sweeps.
func NewReconcileCommissionsCommandHandler(
	uowFactory OrderUoWFactory,
	auditLog ports.AuditLog,
	logger *slog.Logger,
) ReconcileCommissionsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReconcileCommissionsCommandHandler{
		uowFactory: uowFactory,
		auditLog:   auditLog,
		logger:     logger,
	}
}

// Handle processes the reconciliation command.
//
// Orders are only read; findings go to the audit log as
// commission_mismatch events attributed to the platform. An order that is
// already flagged on the trail is counted and logged but not flagged again.
// Audit failures are logged and swallowed so a sweep always runs to
// completion.
func (h *ReconcileCommissionsCommandHandler) Handle(ctx context.Context, cmd ReconcileCommissionsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	completed, err := uow.OrderRepository().GetAllCompleted(ctx)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	effects := newPostCommitEffects(h.logger)
	mismatches := 0
	for _, aggregate := range completed {
		if h.splitReassembles(aggregate) {
			continue
		}
		mismatches++
		orderID := aggregate.ID()
		h.logger.Warn("commission split does not reassemble gross amount",
			"order_id", orderID.String(),
			"gross", aggregate.GrossAmount().String(),
			"amount", aggregate.CommissionAmount().String(),
			"payout", aggregate.ProviderPayout().String())

		if h.alreadyFlagged(ctx, orderID) {
			continue
		}

		effects.Add("audit commission_mismatch", auditEffect(h.auditLog, audit.CommissionMismatch,
			audit.SystemActorID(), audit.ActorSystem, &orderID, map[string]string{
				"gross":  aggregate.GrossAmount().String(),
				"amount": aggregate.CommissionAmount().String(),
				"payout": aggregate.ProviderPayout().String(),
			}))
	}
	effects.Drain(ctx)

	h.logger.Info("commission reconciliation finished",
		"orders", len(completed),
		"mismatches", mismatches)
	return nil
}

// alreadyFlagged reports whether the order already carries a
// commission_mismatch event, so repeated sweeps do not pile up duplicates
// for the same unresolved split. When the lookback itself fails the order
// is treated as unflagged and the event is appended again.
func (h *ReconcileCommissionsCommandHandler) alreadyFlagged(ctx context.Context, orderID kernel.UUID) bool {
	prior, err := h.auditLog.Query(ctx, ports.AuditFilter{
		OrderID:   &orderID,
		EventType: audit.CommissionMismatch,
	})
	if err != nil {
		h.logger.Warn("audit lookback failed", "order_id", orderID.String(), "error", err)
		return false
	}
	return len(prior) > 0
}

func (h *ReconcileCommissionsCommandHandler) splitReassembles(aggregate *order.Order) bool {
	return aggregate.CommissionAmount().Add(aggregate.ProviderPayout()).Equals(aggregate.GrossAmount())
}
