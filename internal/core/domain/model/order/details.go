package order

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// VehicleKind identifies the vehicle class used for a delivery order.
// It drives the speed and price multiplier in delivery pricing.
type VehicleKind int

const (
	// UnknownVehicle represents an invalid or undefined vehicle kind.
	UnknownVehicle VehicleKind = iota

	// Bike is a bicycle or scooter for small packages.
	Bike

	// Car is a passenger car for medium packages.
	Car

	// Truck is a light truck for heavy packages.
	Truck
)

func getVehicleKindStrings() map[VehicleKind]string {
	return map[VehicleKind]string{
		UnknownVehicle: "unknown",
		Bike:           "bike",
		Car:            "car",
		Truck:          "truck",
	}
}

// VehicleKindFromString parses a vehicle kind from its string representation.
func VehicleKindFromString(value string) (VehicleKind, error) {
	for k, s := range getVehicleKindStrings() {
		if k != UnknownVehicle && s == value {
			return k, nil
		}
	}
	return UnknownVehicle, errs.NewValueIsInvalidErrorWithCause("vehicle kind",
		fmt.Errorf("%q is not a known vehicle kind", value))
}

// Validate checks if the VehicleKind value is valid.
func (k VehicleKind) Validate() error {
	if k != Bike && k != Car && k != Truck {
		return errs.NewValueIsInvalidErrorWithCause("vehicle kind",
			fmt.Errorf("%d is not a valid vehicle kind", k))
	}
	return nil
}

// String returns the lowercase name of the vehicle kind.
func (k VehicleKind) String() string {
	if s, ok := getVehicleKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Details is the vertical-specific payload of an order. Exactly one of the
// four shapes is populated per order and it must match the order's Type.
//
// The interface is sealed: only the payload types in this package implement
// it, which makes it a closed sum over the four verticals.
type Details interface {
	// Vertical returns the order type the payload shape belongs to.
	Vertical() Type

	isDetails()
}

// DeliveryDetails is the payload of a delivery order: route, package
// metadata, and the pricing outputs computed at creation.
type DeliveryDetails struct {
	pickup      kernel.GeoPoint
	dropoff     kernel.GeoPoint
	description string
	weightKg    float64
	vehicle     VehicleKind
	distanceKm  float64
	etaMinutes  int
}

// NewDeliveryDetails creates a validated delivery payload.
// Pickup and dropoff must be constructed GeoPoints, the package weight must
// be positive, and the vehicle kind must be valid. Distance and ETA are the
// values computed by the pricing utility at creation time.
func NewDeliveryDetails(
	pickup, dropoff kernel.GeoPoint,
	description string,
	weightKg float64,
	vehicle VehicleKind,
	distanceKm float64,
	etaMinutes int,
) (DeliveryDetails, error) {
	if err := pickup.Validate(); err != nil {
		return DeliveryDetails{}, err
	}
	if err := dropoff.Validate(); err != nil {
		return DeliveryDetails{}, err
	}
	if weightKg <= 0 {
		return DeliveryDetails{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%f is not greater than 0", weightKg))
	}
	if err := vehicle.Validate(); err != nil {
		return DeliveryDetails{}, err
	}
	if distanceKm < 0 {
		return DeliveryDetails{}, errs.NewValueIsInvalidError("distance")
	}
	if etaMinutes < 0 {
		return DeliveryDetails{}, errs.NewValueIsInvalidError("eta")
	}

	return DeliveryDetails{
		pickup:      pickup,
		dropoff:     dropoff,
		description: description,
		weightKg:    weightKg,
		vehicle:     vehicle,
		distanceKm:  distanceKm,
		etaMinutes:  etaMinutes,
	}, nil
}

// Vertical returns Delivery.
func (d DeliveryDetails) Vertical() Type { return Delivery }

func (d DeliveryDetails) isDetails() {}

// Pickup returns the pickup location.
func (d DeliveryDetails) Pickup() kernel.GeoPoint { return d.pickup }

// Dropoff returns the dropoff location.
func (d DeliveryDetails) Dropoff() kernel.GeoPoint { return d.dropoff }

// Description returns the package description.
func (d DeliveryDetails) Description() string { return d.description }

// WeightKg returns the package weight in kilograms.
func (d DeliveryDetails) WeightKg() float64 { return d.weightKg }

// Vehicle returns the vehicle kind for the delivery.
func (d DeliveryDetails) Vehicle() VehicleKind { return d.vehicle }

// DistanceKm returns the computed route distance in kilometers.
func (d DeliveryDetails) DistanceKm() float64 { return d.distanceKm }

// EtaMinutes returns the estimated delivery time in minutes.
func (d DeliveryDetails) EtaMinutes() int { return d.etaMinutes }

// Line is an immutable snapshot of a single cart line inside a marketplace
// order. The unit price is the price captured at add-to-cart time, not the
// live catalog price.
type Line struct {
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int
}

// NewLine creates a validated order line snapshot.
func NewLine(productID kernel.UUID, productName string, unitPrice kernel.Money, quantity int) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if productName == "" {
		return Line{}, errs.NewValueIsRequiredError("product name")
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Line{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
	}, nil
}

// ProductID returns the snapshotted product id.
func (l Line) ProductID() kernel.UUID { return l.productID }

// ProductName returns the snapshotted product name.
func (l Line) ProductName() string { return l.productName }

// UnitPrice returns the price captured at add-to-cart time.
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }

// Quantity returns the ordered quantity.
func (l Line) Quantity() int { return l.quantity }

// Total returns unit price times quantity.
func (l Line) Total() kernel.Money {
	return l.unitPrice.MulInt(l.quantity)
}

// MarketplaceDetails is the payload of a marketplace order: the cart line
// snapshots and the fee breakdown that produced the gross amount.
type MarketplaceDetails struct {
	lines       []Line
	subtotal    kernel.Money
	deliveryFee kernel.Money
}

// NewMarketplaceDetails creates a validated marketplace payload.
// The cart must contain at least one line and the subtotal must equal the
// sum of the line totals.
func NewMarketplaceDetails(lines []Line, subtotal, deliveryFee kernel.Money) (MarketplaceDetails, error) {
	if len(lines) == 0 {
		return MarketplaceDetails{}, errs.NewValueIsRequiredError("cart lines")
	}

	sum := kernel.ZeroMoney()
	for _, line := range lines {
		sum = sum.Add(line.Total())
	}
	if !sum.Equals(subtotal) {
		return MarketplaceDetails{}, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%s does not match line total %s", subtotal, sum))
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)

	return MarketplaceDetails{
		lines:       copied,
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
	}, nil
}

// Vertical returns Marketplace.
func (d MarketplaceDetails) Vertical() Type { return Marketplace }

func (d MarketplaceDetails) isDetails() {}

// Lines returns a copy of the order line snapshots.
func (d MarketplaceDetails) Lines() []Line {
	copied := make([]Line, len(d.lines))
	copy(copied, d.lines)
	return copied
}

// Subtotal returns the sum of line totals.
func (d MarketplaceDetails) Subtotal() kernel.Money { return d.subtotal }

// DeliveryFee returns the delivery fee added to the subtotal.
func (d MarketplaceDetails) DeliveryFee() kernel.Money { return d.deliveryFee }

// SourcingDetails is the payload of a quote-based sourcing order.
type SourcingDetails struct {
	requirements string
}

// NewSourcingDetails creates a validated sourcing payload.
// The requirements description must not be empty.
func NewSourcingDetails(requirements string) (SourcingDetails, error) {
	if requirements == "" {
		return SourcingDetails{}, errs.NewValueIsRequiredError("requirements")
	}
	return SourcingDetails{requirements: requirements}, nil
}

// Vertical returns Sourcing.
func (d SourcingDetails) Vertical() Type { return Sourcing }

func (d SourcingDetails) isDetails() {}

// Requirements returns the sourcing requirements description.
func (d SourcingDetails) Requirements() string { return d.requirements }

// CoachingDetails is the payload of a quote-based coaching order.
type CoachingDetails struct {
	topic           string
	sessionAt       time.Time
	durationMinutes int
}

// NewCoachingDetails creates a validated coaching payload.
func NewCoachingDetails(topic string, sessionAt time.Time, durationMinutes int) (CoachingDetails, error) {
	if topic == "" {
		return CoachingDetails{}, errs.NewValueIsRequiredError("topic")
	}
	if sessionAt.IsZero() {
		return CoachingDetails{}, errs.NewValueIsRequiredError("session time")
	}
	if durationMinutes <= 0 {
		return CoachingDetails{}, errs.NewValueIsInvalidErrorWithCause("duration",
			fmt.Errorf("%d is not greater than 0", durationMinutes))
	}

	return CoachingDetails{
		topic:           topic,
		sessionAt:       sessionAt,
		durationMinutes: durationMinutes,
	}, nil
}

// Vertical returns Coaching.
func (d CoachingDetails) Vertical() Type { return Coaching }

func (d CoachingDetails) isDetails() {}

// Topic returns the coaching session topic.
func (d CoachingDetails) Topic() string { return d.topic }

// SessionAt returns the scheduled session time.
func (d CoachingDetails) SessionAt() time.Time { return d.sessionAt }

// DurationMinutes returns the planned session duration.
func (d CoachingDetails) DurationMinutes() int { return d.durationMinutes }
