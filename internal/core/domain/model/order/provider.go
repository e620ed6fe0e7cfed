package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ProviderKind discriminates the five provider roles that can fulfil orders.
// Together with a provider id it forms the polymorphic provider reference on
// an order.
type ProviderKind int

const (
	// UnknownProviderKind represents an invalid or undefined provider kind.
	UnknownProviderKind ProviderKind = iota

	// Driver fulfils delivery orders with their own vehicle.
	Driver

	// Seller fulfils marketplace orders from their product catalog.
	Seller

	// SourcingAgent fulfils sourcing orders.
	SourcingAgent

	// ImportCoach fulfils coaching orders.
	ImportCoach

	// LogisticsCompany fulfils delivery orders as a fleet operator.
	LogisticsCompany
)

func getProviderKindStrings() map[ProviderKind]string {
	return map[ProviderKind]string{
		UnknownProviderKind: "unknown",
		Driver:              "driver",
		Seller:              "seller",
		SourcingAgent:       "sourcing_agent",
		ImportCoach:         "import_coach",
		LogisticsCompany:    "logistics_company",
	}
}

func getValidProviderKindStrings() map[ProviderKind]string {
	//nolint:exhaustive // UnknownProviderKind is intentionally excluded
	return map[ProviderKind]string{
		Driver:           "driver",
		Seller:           "seller",
		SourcingAgent:    "sourcing_agent",
		ImportCoach:      "import_coach",
		LogisticsCompany: "logistics_company",
	}
}

// ProviderKindFromString parses a provider kind from its string
// representation.
func ProviderKindFromString(value string) (ProviderKind, error) {
	for k, s := range getValidProviderKindStrings() {
		if s == value {
			return k, nil
		}
	}
	return UnknownProviderKind, errs.NewValueIsInvalidErrorWithCause("provider kind",
		fmt.Errorf("%q is not a known provider kind", value))
}

// Validate checks if the ProviderKind value is valid.
func (k ProviderKind) Validate() error {
	if _, ok := getValidProviderKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("provider kind",
			fmt.Errorf("%d is not a valid provider kind", k))
	}
	return nil
}

// String returns the lowercase name of the provider kind.
func (k ProviderKind) String() string {
	if s, ok := getProviderKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// CanOverrideCommission reports whether providers of this kind may carry a
// stored commission rate that overrides the vertical default. Delivery
// providers (drivers and logistics companies) always settle at the delivery
// default and cannot override it.
func (k ProviderKind) CanOverrideCommission() bool {
	return k == Seller || k == SourcingAgent
}

// ServesVertical reports whether providers of this kind may be assigned to
// orders of the given type.
func (k ProviderKind) ServesVertical(t Type) bool {
	switch t {
	case Delivery:
		return k == Driver || k == LogisticsCompany
	case Marketplace:
		return k == Seller
	case Sourcing:
		return k == SourcingAgent
	case Coaching:
		return k == ImportCoach
	default:
		return false
	}
}

// ErrProviderRefIsNotConstructed is returned when attempting to use an
// improperly initialized ProviderRef.
var ErrProviderRefIsNotConstructed = errs.NewValueIsRequiredError(
	"provider reference must be created via NewProviderRef constructor")

// ProviderRef is the polymorphic reference to the counterparty fulfilling an
// order: a provider id plus its kind discriminator. An order carries no
// reference until a provider is assigned.
type ProviderRef struct {
	id   kernel.UUID
	kind ProviderKind

	guard guard.ConstructorGuard
}

// NewProviderRef creates a validated provider reference.
func NewProviderRef(id kernel.UUID, kind ProviderKind) (ProviderRef, error) {
	if err := id.Validate(); err != nil {
		return ProviderRef{}, err
	}
	if err := kind.Validate(); err != nil {
		return ProviderRef{}, err
	}

	return ProviderRef{
		id:    id,
		kind:  kind,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ID returns the provider's unique identifier.
func (r ProviderRef) ID() kernel.UUID {
	return r.id
}

// Kind returns the provider kind discriminator.
func (r ProviderRef) Kind() ProviderKind {
	return r.kind
}

// Validate ensures the ProviderRef was created through NewProviderRef.
func (r ProviderRef) Validate() error {
	return r.guard.Validate(ErrProviderRefIsNotConstructed)
}

// IsEqual compares two references by id and kind.
func (r ProviderRef) IsEqual(other ProviderRef) bool {
	return r.id.IsEqual(other.id) && r.kind == other.kind
}
