package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCommissionFrozen is returned when attempting to change commission
	// fields after the order reached a terminal state. Financial fields are
	// immutable once an order is completed, cancelled, or failed.
	ErrCommissionFrozen = errors.New("commission is immutable once the order is terminal")

	// ErrProviderIsRequired is returned when attempting to move an order to
	// provider_assigned without a provider reference.
	ErrProviderIsRequired = errs.NewValueIsRequiredError("provider reference")
)

// Order is the aggregate root spanning the four business verticals. It owns
// the status state machine, the polymorphic provider reference, the frozen
// financial split, and the append-only status history.
//
// Order maintains these invariants:
//   - orderNumber, orderType, and customerID never change after creation
//   - the vertical payload shape always matches orderType
//   - commissionAmount + providerPayout == grossAmount once computed
//   - status always equals the last status history entry
//   - commission fields are immutable once the order is terminal
//   - orders are never hard-deleted, only flagged soft-deleted
type Order struct {
	id          kernel.UUID
	orderNumber kernel.OrderNumber
	orderType   Type
	customerID  kernel.UUID
	providerRef *ProviderRef
	details     Details

	grossAmount      kernel.Money
	commissionRate   decimal.Decimal
	commissionAmount kernel.Money
	providerPayout   kernel.Money
	commissionFrozen bool

	status        Status
	history       []StatusChange
	paymentStatus PaymentStatus
	completedAt   *time.Time
	softDeleted   bool

	// version backs the optimistic-concurrency guard at the persistence
	// layer; a stale version surfaces as a retryable conflict, never a
	// silent overwrite.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the created status with its first status
// history entry. The gross amount, order type, and customer id are fixed for
// the lifetime of the order after this call.
//
// The payload must match the order type: exactly one of the four vertical
// shapes, carrying the data for that vertical only.
func NewOrder(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	orderType Type,
	customerID kernel.UUID,
	grossAmount kernel.Money,
	details Details,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		paymentStatus: PaymentPending,
		version:       1,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setOrderType(orderType),
		o.setCustomerID(customerID),
		o.setDetails(orderType, details),
	); err != nil {
		return nil, err
	}

	o.grossAmount = grossAmount

	change, err := NewStatusChange(Created, createdAt, customerID, "order created")
	if err != nil {
		return nil, err
	}
	o.history = []StatusChange{change}

	return o, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// Order aggregate. All fields are required except ProviderRef and
// CompletedAt.
type RestoreOrderParams struct {
	ID               kernel.UUID
	OrderNumber      kernel.OrderNumber
	OrderType        Type
	CustomerID       kernel.UUID
	ProviderRef      *ProviderRef
	Details          Details
	GrossAmount      kernel.Money
	CommissionRate   decimal.Decimal
	CommissionAmount kernel.Money
	ProviderPayout   kernel.Money
	Status           Status
	History          []StatusChange
	PaymentStatus    PaymentStatus
	CompletedAt      *time.Time
	SoftDeleted      bool
	Version          int
}

// RestoreOrder reconstructs an Order from persistence. It revalidates the
// structural invariants: the payload matches the type, the history is
// non-empty, and the current status equals the last history entry. Orders
// restored in a terminal state have their commission frozen.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setOrderNumber(params.OrderNumber),
		o.setOrderType(params.OrderType),
		o.setCustomerID(params.CustomerID),
		o.setDetails(params.OrderType, params.Details),
		params.Status.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if len(params.History) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	last := params.History[len(params.History)-1]
	if last.Status() != params.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause("status history",
			fmt.Errorf("current status %s does not match last history entry %s",
				params.Status, last.Status()))
	}
	if params.Version <= 0 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not greater than 0", params.Version))
	}
	if params.ProviderRef != nil {
		if err := params.ProviderRef.Validate(); err != nil {
			return nil, err
		}
		ref := *params.ProviderRef
		o.providerRef = &ref
	}

	o.grossAmount = params.GrossAmount
	o.commissionRate = params.CommissionRate
	o.commissionAmount = params.CommissionAmount
	o.providerPayout = params.ProviderPayout
	o.commissionFrozen = params.Status.IsTerminal()
	o.status = params.Status
	o.history = make([]StatusChange, len(params.History))
	copy(o.history, params.History)
	o.paymentStatus = params.PaymentStatus
	o.softDeleted = params.SoftDeleted
	o.version = params.Version
	if params.CompletedAt != nil {
		at := *params.CompletedAt
		o.completedAt = &at
	}

	return o, nil
}

// Validate ensures the Order instance was created through a factory
// function. Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order identifier.
func (o *Order) OrderNumber() kernel.OrderNumber {
	return o.orderNumber
}

// OrderType returns the business vertical of the order.
func (o *Order) OrderType() Type {
	return o.orderType
}

// CustomerID returns the owning customer's id.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// ProviderRef returns the assigned provider reference, or nil if no provider
// has been assigned yet.
func (o *Order) ProviderRef() *ProviderRef {
	if o.providerRef == nil {
		return nil
	}
	ref := *o.providerRef
	return &ref
}

// Details returns the vertical-specific payload.
func (o *Order) Details() Details {
	return o.details
}

// GrossAmount returns the total charged to the customer.
func (o *Order) GrossAmount() kernel.Money {
	return o.grossAmount
}

// CommissionRate returns the applied commission rate in percent.
func (o *Order) CommissionRate() decimal.Decimal {
	return o.commissionRate
}

// CommissionAmount returns the platform's cut of the gross amount.
func (o *Order) CommissionAmount() kernel.Money {
	return o.commissionAmount
}

// ProviderPayout returns the gross amount minus the platform commission.
func (o *Order) ProviderPayout() kernel.Money {
	return o.providerPayout
}

// Status returns the current fulfilment status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history. The first entry
// is the creation entry; the last entry always matches the current status.
func (o *Order) History() []StatusChange {
	copied := make([]StatusChange, len(o.history))
	copy(copied, o.history)
	return copied
}

// PaymentStatus returns the payment axis of the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// CompletedAt returns the actual completion time, or nil if the order has
// not completed.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

// IsSoftDeleted reports whether the order is hidden from default listings.
func (o *Order) IsSoftDeleted() bool {
	return o.softDeleted
}

// CreatedAt returns the creation time recorded by the first history entry.
func (o *Order) CreatedAt() time.Time {
	return o.history[0].ChangedAt()
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// CanModifyCommission reports whether commission fields may still change.
// It is false once the order reached a terminal state: the recompute on
// completion must be decided before the completion transition is applied.
func (o *Order) CanModifyCommission() bool {
	return !o.commissionFrozen && !o.status.IsTerminal()
}

// SetCommission sets the commission split for the order.
//
// The split must reassemble the gross amount exactly: amount + payout ==
// gross. The rate must be within [0, 100] percent.
//
// The one allowed call after the completion transition freezes the fields;
// any further call, and any call on an order restored in a terminal state,
// fails with ErrCommissionFrozen.
func (o *Order) SetCommission(rate decimal.Decimal, amount, payout kernel.Money) error {
	if o.commissionFrozen {
		return ErrCommissionFrozen
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return errs.NewValueIsOutOfRangeError("commission rate", rate.String(), "0", "100")
	}
	if !amount.Add(payout).Equals(o.grossAmount) {
		return errs.NewValueIsInvalidErrorWithCause("commission split",
			fmt.Errorf("%s + %s does not equal gross %s", amount, payout, o.grossAmount))
	}

	o.commissionRate = rate
	o.commissionAmount = amount
	o.providerPayout = payout
	if o.status.IsTerminal() {
		o.commissionFrozen = true
	}
	return nil
}

// AssignProvider assigns or reassigns the fulfilling provider.
//
// The provider kind must serve the order's vertical. Assigning to an order
// in the created status moves it to provider_assigned; reassignment while
// already provider_assigned keeps the status and appends a history entry.
// Assignment in any other status is rejected with an InvalidTransitionError.
func (o *Order) AssignProvider(ref ProviderRef, actorID kernel.UUID, at time.Time) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if !ref.Kind().ServesVertical(o.orderType) {
		return errs.NewValueIsInvalidErrorWithCause("provider kind",
			fmt.Errorf("%s cannot serve %s orders", ref.Kind(), o.orderType))
	}

	if o.status == ProviderAssigned {
		change, err := NewStatusChange(ProviderAssigned, at, actorID, "provider reassigned")
		if err != nil {
			return err
		}
		o.providerRef = &ref
		o.history = append(o.history, change)
		return nil
	}

	if _, err := o.status.TransitionTo(ProviderAssigned); err != nil {
		return err
	}

	change, err := NewStatusChange(ProviderAssigned, at, actorID, "provider assigned")
	if err != nil {
		return err
	}

	o.providerRef = &ref
	o.status = ProviderAssigned
	o.history = append(o.history, change)
	return nil
}

// TransitionTo moves the order to a new status.
//
// The transition must be present in the state machine's adjacency table,
// evaluated against the order's current status; on violation the returned
// error is an *InvalidTransitionError carrying both statuses and no state
// is changed.
//
// On success the new status and a history entry are applied together. A
// transition to completed records the actual completion time; transitions
// to cancelled or failed freeze the commission fields immediately (the
// completed path freezes them after the one allowed recompute).
func (o *Order) TransitionTo(newStatus Status, actorID kernel.UUID, reason string, at time.Time) error {
	if newStatus == ProviderAssigned && o.providerRef == nil {
		return ErrProviderIsRequired
	}

	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	change, err := NewStatusChange(next, at, actorID, reason)
	if err != nil {
		return err
	}

	o.status = next
	o.history = append(o.history, change)

	switch next {
	case Completed:
		completedAt := at
		o.completedAt = &completedAt
	case Cancelled, Failed:
		o.commissionFrozen = true
	default:
	}

	return nil
}

// MarkPaymentStatus updates the payment axis of the order. Payment status is
// reported by the payment collaborator and is not constrained by the
// fulfilment state machine.
func (o *Order) MarkPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

// SoftDelete hides the order from default listings. Orders are never
// hard-deleted regardless of status; identity fields stay reserved forever.
func (o *Order) SoftDelete() {
	o.softDeleted = true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setOrderType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDetails(orderType Type, details Details) error {
	if details == nil {
		return errs.NewValueIsRequiredError("order details")
	}
	if details.Vertical() != orderType {
		return errs.NewValueIsInvalidErrorWithCause("order details",
			fmt.Errorf("%s payload does not match %s order type",
				details.Vertical(), orderType))
	}
	o.details = details
	return nil
}
