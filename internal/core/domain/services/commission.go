package services

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CommissionResult is the derived commission split for an order. It is
// always computed, never hand-edited: Amount + Payout equals the gross
// amount it was computed from exactly.
type CommissionResult struct {
	Rate   decimal.Decimal
	Amount kernel.Money
	Payout kernel.Money
}

// RateSource supplies per-provider commission rate overrides. The second
// return value reports whether the provider has an override stored.
type RateSource interface {
	OverrideRate(ctx context.Context, ref order.ProviderRef) (decimal.Decimal, bool, error)
}

func getDefaultRates() map[order.Type]decimal.Decimal {
	return map[order.Type]decimal.Decimal{
		order.Delivery:    decimal.NewFromInt(15),
		order.Marketplace: decimal.NewFromInt(10),
		order.Sourcing:    decimal.NewFromInt(5),
		order.Coaching:    decimal.NewFromInt(10),
	}
}

// CommissionCalculator is a domain service computing the platform's
// commission split for an order.
//
// Business rules:
//   - Each vertical has a default rate: delivery 15%, marketplace 10%,
//     sourcing 5%, coaching 10%
//   - Only sellers and sourcing agents may carry a stored override rate
//   - A failing or absent rate source falls back to the vertical default
//     silently; commission computation never fails a business operation
//   - The commission amount is gross * rate / 100 rounded to two decimal
//     places with banker's rounding; the payout is the exact remainder
type CommissionCalculator struct {
	rates map[order.Type]decimal.Decimal
	src   RateSource
}

// NewCommissionCalculator creates a calculator using the default vertical
// rates. The rate source is optional: pass nil to disable overrides.
func NewCommissionCalculator(src RateSource) CommissionCalculator {
	return CommissionCalculator{
		rates: getDefaultRates(),
		src:   src,
	}
}

// Calculate computes the commission split for the given vertical and gross
// amount. The provider reference is optional; when present and its kind is
// allowed to override, the stored override rate is applied instead of the
// vertical default.
//
// Calculate never returns an error: any resolution failure or out-of-range
// override falls back to the vertical default.
func (c CommissionCalculator) Calculate(
	ctx context.Context,
	orderType order.Type,
	gross kernel.Money,
	ref *order.ProviderRef,
) CommissionResult {
	rate := c.resolveRate(ctx, orderType, ref)

	amount := gross.MulPercent(rate)
	payout, err := gross.Sub(amount)
	if err != nil {
		// rate above 100 never reaches here; guard against a
		// misconfigured default table anyway
		amount = gross
		payout = kernel.ZeroMoney()
	}

	return CommissionResult{
		Rate:   rate,
		Amount: amount,
		Payout: payout,
	}
}

func (c CommissionCalculator) resolveRate(ctx context.Context, orderType order.Type, ref *order.ProviderRef) decimal.Decimal {
	fallback := c.rates[orderType]

	if ref == nil || c.src == nil || !ref.Kind().CanOverrideCommission() {
		return fallback
	}

	override, ok, err := c.src.OverrideRate(ctx, *ref)
	if err != nil || !ok {
		return fallback
	}
	if override.IsNegative() || override.GreaterThan(decimal.NewFromInt(100)) {
		return fallback
	}
	return override
}
