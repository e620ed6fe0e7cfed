package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignProviderCommandIsNotConstructed = errors.New(
	"AssignProviderCommand must be created via NewAssignProviderCommand constructor",
)

// AssignProviderCommand represents a request to assign or reassign the
// fulfilling provider of an existing order. Assignment of an order in the
// created status moves it to provider_assigned; reassignment while already
// provider_assigned swaps the provider and keeps the status.
//
// Example:
//
//	cmd, err := NewAssignProviderCommand(orderID, driverID, dispatcherID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
type AssignProviderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	providerID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignProviderCommand creates a command to assign a provider to an
// order. Validates the order id, the provider id, and the actor id.
func NewAssignProviderCommand(
	orderID kernel.UUID,
	providerID kernel.UUID,
	actorID kernel.UUID,
) (AssignProviderCommand, error) {
	command := AssignProviderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setProviderID(providerID),
		command.setActorID(actorID),
	); err != nil {
		return AssignProviderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignProviderCommandIsNotConstructed if validation fails.
func (c AssignProviderCommand) Validate() error {
	return c.guard.Validate(ErrAssignProviderCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to assign.
func (c AssignProviderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProviderID returns the id of the provider to assign.
func (c AssignProviderCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// ActorID returns the id of the party requesting the assignment.
func (c AssignProviderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AssignProviderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignProviderCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	c.providerID = providerID
	return nil
}

func (c *AssignProviderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
