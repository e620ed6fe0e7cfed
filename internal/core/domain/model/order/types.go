package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Type identifies the business vertical an order belongs to.
// The type is fixed at creation and determines which payload shape and
// pricing path applies; it never changes for the lifetime of the order.
type Type int

const (
	// UnknownType represents an invalid or undefined order type.
	UnknownType Type = iota

	// Delivery is a point-to-point package delivery order priced from
	// distance and weight.
	Delivery

	// Marketplace is a cart checkout order fulfilled by a seller.
	Marketplace

	// Sourcing is a quote-based product sourcing engagement with an agent.
	Sourcing

	// Coaching is a quote-based import coaching session.
	Coaching
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "unknown",
		Delivery:    "delivery",
		Marketplace: "marketplace",
		Sourcing:    "sourcing",
		Coaching:    "coaching",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // UnknownType is intentionally excluded as it's invalid
	return map[Type]string{
		Delivery:    "delivery",
		Marketplace: "marketplace",
		Sourcing:    "sourcing",
		Coaching:    "coaching",
	}
}

// TypeFromString parses an order type from its string representation.
// Returns an error for anything outside the four known verticals.
func TypeFromString(value string) (Type, error) {
	for t, s := range getValidTypeStrings() {
		if s == value {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("order type",
		fmt.Errorf("%q is not a known order type", value))
}

// Validate checks if the Type value is one of the four known verticals.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the lowercase name of the order type.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// NumberPrefix returns the order-number prefix for the vertical.
func (t Type) NumberPrefix() string {
	switch t {
	case Delivery:
		return "DLV"
	case Marketplace:
		return "MKT"
	case Sourcing:
		return "SRC"
	case Coaching:
		return "CCH"
	default:
		return "ORD"
	}
}

// IsQuoteBased reports whether the vertical is priced from an externally
// supplied quote rather than an internal pricing calculation.
func (t Type) IsQuoteBased() bool {
	return t == Sourcing || t == Coaching
}
