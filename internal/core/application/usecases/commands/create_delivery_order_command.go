package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateDeliveryOrderCommandIsNotConstructed = errors.New(
		"CreateDeliveryOrderCommand must be created via NewCreateDeliveryOrderCommand constructor",
	)
	ErrWeightIsInvalid = errors.New("weight must be greater than 0")
)

// CreateDeliveryOrderCommand represents a request to create a point-to-point
// delivery order. The price, distance, and ETA are computed by the handler;
// the command carries only the route and package inputs.
//
// A driver id or a generic provider id may be supplied to pre-assign the
// fulfilling provider. The driver id takes precedence when both are set.
//
// Example:
//
//	cmd, err := NewCreateDeliveryOrderCommand(kernel.NewUUID(), customerID,
//	    pickup, dropoff, "documents", 2.5, order.Bike, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery order: %w", err)
//	}
type CreateDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	pickup      kernel.GeoPoint
	dropoff     kernel.GeoPoint
	description string
	weightKg    float64
	vehicle     order.VehicleKind
	driverID    *kernel.UUID
	providerID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryOrderCommand creates a command to register a new delivery
// order. Validates identifiers, both route points, the package weight, and
// the vehicle kind. The driver and provider ids are optional.
func NewCreateDeliveryOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	description string,
	weightKg float64,
	vehicle order.VehicleKind,
	driverID *kernel.UUID,
	providerID *kernel.UUID,
) (CreateDeliveryOrderCommand, error) {
	command := CreateDeliveryOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setRoute(pickup, dropoff),
		command.setWeight(weightKg),
		command.setVehicle(vehicle),
		command.setAssignment(driverID, providerID),
	); err != nil {
		return CreateDeliveryOrderCommand{}, err
	}

	command.description = description
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryOrderCommandIsNotConstructed if validation fails.
func (c CreateDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateDeliveryOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's id.
func (c CreateDeliveryOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Pickup returns the pickup location.
func (c CreateDeliveryOrderCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// Dropoff returns the dropoff location.
func (c CreateDeliveryOrderCommand) Dropoff() kernel.GeoPoint {
	return c.dropoff
}

// Description returns the package description.
func (c CreateDeliveryOrderCommand) Description() string {
	return c.description
}

// WeightKg returns the package weight in kilograms.
func (c CreateDeliveryOrderCommand) WeightKg() float64 {
	return c.weightKg
}

// Vehicle returns the requested vehicle kind.
func (c CreateDeliveryOrderCommand) Vehicle() order.VehicleKind {
	return c.vehicle
}

// DriverID returns the pre-assigned driver id, or nil.
func (c CreateDeliveryOrderCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// ProviderID returns the pre-assigned provider id, or nil.
func (c CreateDeliveryOrderCommand) ProviderID() *kernel.UUID {
	return c.providerID
}

func (c *CreateDeliveryOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateDeliveryOrderCommand) setRoute(pickup, dropoff kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	if err := dropoff.Validate(); err != nil {
		return fmt.Errorf("dropoff: %w", err)
	}
	c.pickup = pickup
	c.dropoff = dropoff
	return nil
}

func (c *CreateDeliveryOrderCommand) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return ErrWeightIsInvalid
	}
	c.weightKg = weightKg
	return nil
}

func (c *CreateDeliveryOrderCommand) setVehicle(vehicle order.VehicleKind) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}

func (c *CreateDeliveryOrderCommand) setAssignment(driverID, providerID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
		id := *driverID
		c.driverID = &id
	}
	if providerID != nil {
		if err := providerID.Validate(); err != nil {
			return err
		}
		id := *providerID
		c.providerID = &id
	}
	return nil
}
