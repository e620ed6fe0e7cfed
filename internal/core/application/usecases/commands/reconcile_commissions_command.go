package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrReconcileCommissionsCommandIsNotConstructed = errors.New(
	"ReconcileCommissionsCommand must be created via NewReconcileCommissionsCommand constructor",
)

// ReconcileCommissionsCommand triggers a sweep over all completed orders
// verifying that every stored commission split still reassembles its gross
// amount. Mismatches are recorded in the audit log; the sweep never mutates
// orders.
//
// Example:
//
//	cmd := NewReconcileCommissionsCommand()
//	handler := NewReconcileCommissionsCommandHandler(uowFactory, auditLog, logger)
//
//	// Run periodically from a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reconciliation failed: %v", err)
//	}
type ReconcileCommissionsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileCommissionsCommand creates a command to trigger commission
// reconciliation. This is a parameterless command sweeping all completed
// orders.
func NewReconcileCommissionsCommand() ReconcileCommissionsCommand {
	return ReconcileCommissionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileCommissionsCommandIsNotConstructed if validation fails.
func (c *ReconcileCommissionsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCommissionsCommandIsNotConstructed)
}
