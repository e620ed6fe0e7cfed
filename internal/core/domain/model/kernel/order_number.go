package kernel

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/google/uuid"
)

// ErrOrderNumberIsNotConstructed is returned when attempting to use an
// improperly initialized OrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewOrderNumber or OrderNumberFromString")

// OrderNumber is the human-readable order identifier shown to customers and
// providers. It is minted exactly once at order creation and never changes
// or gets reused afterwards, even for soft-deleted orders.
//
// Format: PREFIX-YYYYMMDD-XXXXXX, where PREFIX identifies the business
// vertical and XXXXXX is random hex entropy, e.g. "DLV-20260901-A3F2C1".
type OrderNumber struct {
	value string

	guard guard.ConstructorGuard
}

// NewOrderNumber mints a new order number with the given vertical prefix and
// creation time. The prefix must be non-empty; it is uppercased in the result.
func NewOrderNumber(prefix string, at time.Time) (OrderNumber, error) {
	if prefix == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("prefix")
	}

	entropy := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	value := fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), at.UTC().Format("20060102"), entropy)

	return OrderNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// OrderNumberFromString reconstructs an OrderNumber from its persisted
// representation.
func OrderNumberFromString(value string) (OrderNumber, error) {
	if value == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}

	return OrderNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the order number text.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers by value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate ensures the OrderNumber was created through a constructor.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}
