package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// StatusChange is a single immutable entry in an order's status history.
// The history is append-only: the first entry is written at creation and no
// entry is ever updated or removed. The order's current status always equals
// the status of the last entry.
type StatusChange struct {
	status    Status
	changedAt time.Time
	changedBy kernel.UUID
	reason    string
}

// NewStatusChange creates a validated history entry.
func NewStatusChange(status Status, changedAt time.Time, changedBy kernel.UUID, reason string) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if changedAt.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("changed at")
	}
	if err := changedBy.Validate(); err != nil {
		return StatusChange{}, err
	}

	return StatusChange{
		status:    status,
		changedAt: changedAt,
		changedBy: changedBy,
		reason:    reason,
	}, nil
}

// Status returns the status recorded by the entry.
func (c StatusChange) Status() Status { return c.status }

// ChangedAt returns when the change happened.
func (c StatusChange) ChangedAt() time.Time { return c.changedAt }

// ChangedBy returns the actor that requested the change.
func (c StatusChange) ChangedBy() kernel.UUID { return c.changedBy }

// Reason returns the optional free-text reason for the change.
func (c StatusChange) Reason() string { return c.reason }
