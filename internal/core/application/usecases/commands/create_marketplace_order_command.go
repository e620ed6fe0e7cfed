package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateMarketplaceOrderCommandIsNotConstructed = errors.New(
	"CreateMarketplaceOrderCommand must be created via NewCreateMarketplaceOrderCommand constructor",
)

// CreateMarketplaceOrderCommand represents a checkout request: it turns the
// customer's current cart into a marketplace order. The cart contents are
// loaded by the handler inside the checkout transaction.
//
// The optional pickup and destination points drive the delivery fee; when
// either is absent no fee is charged.
type CreateMarketplaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	pickup      *kernel.GeoPoint
	destination *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateMarketplaceOrderCommand creates a checkout command for the
// customer's cart.
func NewCreateMarketplaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	pickup *kernel.GeoPoint,
	destination *kernel.GeoPoint,
) (CreateMarketplaceOrderCommand, error) {
	command := CreateMarketplaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setRoute(pickup, destination),
	); err != nil {
		return CreateMarketplaceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateMarketplaceOrderCommandIsNotConstructed if validation fails.
func (c CreateMarketplaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateMarketplaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateMarketplaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the checking-out customer's id.
func (c CreateMarketplaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Pickup returns the seller pickup point, or nil.
func (c CreateMarketplaceOrderCommand) Pickup() *kernel.GeoPoint {
	return c.pickup
}

// Destination returns the customer destination point, or nil.
func (c CreateMarketplaceOrderCommand) Destination() *kernel.GeoPoint {
	return c.destination
}

func (c *CreateMarketplaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateMarketplaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateMarketplaceOrderCommand) setRoute(pickup, destination *kernel.GeoPoint) error {
	if pickup != nil {
		if err := pickup.Validate(); err != nil {
			return fmt.Errorf("pickup: %w", err)
		}
		point := *pickup
		c.pickup = &point
	}
	if destination != nil {
		if err := destination.Validate(); err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		point := *destination
		c.destination = &point
	}
	return nil
}
