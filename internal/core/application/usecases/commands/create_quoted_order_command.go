package commands

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateQuotedOrderCommandIsNotConstructed = errors.New(
		"CreateQuotedOrderCommand must be created via NewCreateQuotedOrderCommand constructor",
	)
	ErrGrossAmountIsRequired = errors.New("gross amount must be greater than 0")
)

// CreateQuotedOrderCommand represents a request to create a quote-based
// order: sourcing or coaching. These verticals have no internal pricing, so
// the gross amount comes pre-agreed with the provider and both the provider
// id and the amount are mandatory.
//
// The payload fields are per vertical: requirements for sourcing, the
// topic/session/duration triple for coaching.
type CreateQuotedOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	orderType   order.Type
	providerID  kernel.UUID
	grossAmount kernel.Money

	requirements string

	topic           string
	sessionAt       time.Time
	durationMinutes int

	guard guard.ConstructorGuard
}

// NewCreateSourcingOrderCommand creates a command for a sourcing engagement.
func NewCreateSourcingOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	providerID kernel.UUID,
	grossAmount kernel.Money,
	requirements string,
) (CreateQuotedOrderCommand, error) {
	command := CreateQuotedOrderCommand{
		orderType: order.Sourcing,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIdentity(orderID, customerID, providerID),
		command.setGrossAmount(grossAmount),
		command.setRequirements(requirements),
	); err != nil {
		return CreateQuotedOrderCommand{}, err
	}

	return command, nil
}

// NewCreateCoachingOrderCommand creates a command for a coaching session.
func NewCreateCoachingOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	providerID kernel.UUID,
	grossAmount kernel.Money,
	topic string,
	sessionAt time.Time,
	durationMinutes int,
) (CreateQuotedOrderCommand, error) {
	command := CreateQuotedOrderCommand{
		orderType: order.Coaching,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIdentity(orderID, customerID, providerID),
		command.setGrossAmount(grossAmount),
		command.setSession(topic, sessionAt, durationMinutes),
	); err != nil {
		return CreateQuotedOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrCreateQuotedOrderCommandIsNotConstructed if validation fails.
func (c CreateQuotedOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuotedOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateQuotedOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's id.
func (c CreateQuotedOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OrderType returns the quote-based vertical: sourcing or coaching.
func (c CreateQuotedOrderCommand) OrderType() order.Type {
	return c.orderType
}

// ProviderID returns the agreed provider's id.
func (c CreateQuotedOrderCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// GrossAmount returns the pre-agreed quote amount.
func (c CreateQuotedOrderCommand) GrossAmount() kernel.Money {
	return c.grossAmount
}

// Requirements returns the sourcing requirements description.
func (c CreateQuotedOrderCommand) Requirements() string {
	return c.requirements
}

// Topic returns the coaching session topic.
func (c CreateQuotedOrderCommand) Topic() string {
	return c.topic
}

// SessionAt returns the scheduled coaching session time.
func (c CreateQuotedOrderCommand) SessionAt() time.Time {
	return c.sessionAt
}

// DurationMinutes returns the planned coaching session duration.
func (c CreateQuotedOrderCommand) DurationMinutes() int {
	return c.durationMinutes
}

func (c *CreateQuotedOrderCommand) setIdentity(orderID, customerID, providerID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	if err := providerID.Validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	c.orderID = orderID
	c.customerID = customerID
	c.providerID = providerID
	return nil
}

func (c *CreateQuotedOrderCommand) setGrossAmount(grossAmount kernel.Money) error {
	if !grossAmount.IsPositive() {
		return ErrGrossAmountIsRequired
	}
	c.grossAmount = grossAmount
	return nil
}

func (c *CreateQuotedOrderCommand) setRequirements(requirements string) error {
	if requirements == "" {
		return errs.NewValueIsRequiredError("requirements")
	}
	c.requirements = requirements
	return nil
}

func (c *CreateQuotedOrderCommand) setSession(topic string, sessionAt time.Time, durationMinutes int) error {
	if topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}
	if sessionAt.IsZero() {
		return errs.NewValueIsRequiredError("session time")
	}
	if durationMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("duration",
			fmt.Errorf("%d is not greater than 0", durationMinutes))
	}
	c.topic = topic
	c.sessionAt = sessionAt
	c.durationMinutes = durationMinutes
	return nil
}
