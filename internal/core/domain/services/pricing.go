package services

import (
	"math"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PricingConfig is an immutable snapshot of the delivery pricing knobs. It
// is built once at startup from configuration and injected where pricing
// decisions are made, so every quote is reproducible from its inputs.
type PricingConfig struct {
	BasePrice  kernel.Money
	PricePerKm kernel.Money
	PricePerKg kernel.Money

	VehicleSpeedKmh   map[order.VehicleKind]float64
	VehicleMultiplier map[order.VehicleKind]float64

	FreeDeliveryEnabled  bool
	FreeDeliveryRadiusKm float64
}

const fallbackSpeedKmh = 30

// DefaultPricingConfig returns the standard pricing table.
func DefaultPricingConfig() PricingConfig {
	basePrice, _ := kernel.NewMoneyFromFloat(2.00)
	pricePerKm, _ := kernel.NewMoneyFromFloat(0.50)
	pricePerKg, _ := kernel.NewMoneyFromFloat(0.25)

	return PricingConfig{
		BasePrice:  basePrice,
		PricePerKm: pricePerKm,
		PricePerKg: pricePerKg,
		VehicleSpeedKmh: map[order.VehicleKind]float64{
			order.Bike:  20,
			order.Car:   40,
			order.Truck: 30,
		},
		VehicleMultiplier: map[order.VehicleKind]float64{
			order.Bike:  1.0,
			order.Car:   1.25,
			order.Truck: 1.5,
		},
		FreeDeliveryEnabled:  false,
		FreeDeliveryRadiusKm: 0,
	}
}

// DeliveryPricer is a pure domain service computing distance, estimated
// time, and price for delivery orders. It has no side effects and depends
// only on its injected configuration snapshot.
type DeliveryPricer struct {
	config PricingConfig
}

// NewDeliveryPricer creates a pricer over the given configuration snapshot.
func NewDeliveryPricer(config PricingConfig) DeliveryPricer {
	return DeliveryPricer{config: config}
}

// Distance returns the great-circle distance between two points in
// kilometers.
func (p DeliveryPricer) Distance(from, to kernel.GeoPoint) float64 {
	return from.DistanceTo(to)
}

// EstimatedTime returns the estimated delivery time in minutes for the
// given distance and vehicle, rounded up to the next full minute.
func (p DeliveryPricer) EstimatedTime(distanceKm float64, vehicle order.VehicleKind) int {
	if distanceKm <= 0 {
		return 0
	}

	speed, ok := p.config.VehicleSpeedKmh[vehicle]
	if !ok || speed <= 0 {
		speed = fallbackSpeedKmh
	}
	return int(math.Ceil(distanceKm / speed * 60))
}

// Price returns the delivery price for the given distance, package weight,
// and vehicle:
//
//	(base + perKm * distance + perKg * weight) * vehicleMultiplier
//
// rounded to two decimal places with banker's rounding.
func (p DeliveryPricer) Price(distanceKm, weightKg float64, vehicle order.VehicleKind) kernel.Money {
	if distanceKm < 0 {
		distanceKm = 0
	}
	if weightKg < 0 {
		weightKg = 0
	}

	multiplier, ok := p.config.VehicleMultiplier[vehicle]
	if !ok || multiplier <= 0 {
		multiplier = 1
	}

	total := p.config.BasePrice.Decimal().
		Add(p.config.PricePerKm.Decimal().Mul(decimal.NewFromFloat(distanceKm))).
		Add(p.config.PricePerKg.Decimal().Mul(decimal.NewFromFloat(weightKg))).
		Mul(decimal.NewFromFloat(multiplier)).
		RoundBank(2)

	price, err := kernel.NewMoney(total)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return price
}

// DeliveryFee returns the fee added to a marketplace order for delivering
// over the given distance. Within the free-delivery radius the fee is zero
// when the free-delivery flag is enabled; otherwise the flat distance
// formula applies with no weight or vehicle component.
func (p DeliveryPricer) DeliveryFee(distanceKm float64) kernel.Money {
	if distanceKm < 0 {
		distanceKm = 0
	}
	if p.config.FreeDeliveryEnabled && distanceKm <= p.config.FreeDeliveryRadiusKm {
		return kernel.ZeroMoney()
	}

	total := p.config.BasePrice.Decimal().
		Add(p.config.PricePerKm.Decimal().Mul(decimal.NewFromFloat(distanceKm))).
		RoundBank(2)

	fee, err := kernel.NewMoney(total)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return fee
}
