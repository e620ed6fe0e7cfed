package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// fulfilment status. The reason is optional free text kept in the status
// history.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, order.Completed, driverID, "delivered")
//	if err != nil {
//	    return fmt.Errorf("invalid status update: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update failed: %w", err)
//	}
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	actorID   kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to request a status
// transition. Validates the order id, the target status, and the actor id.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	actorID kernel.UUID,
	reason string,
) (UpdateOrderStatusCommand, error) {
	command := UpdateOrderStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNewStatus(newStatus),
		command.setActorID(actorID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ActorID returns the id of the party requesting the transition.
func (c UpdateOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the optional free-text reason for the transition.
func (c UpdateOrderStatusCommand) Reason() string {
	return c.reason
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
