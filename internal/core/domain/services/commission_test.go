package services_test

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRateSource struct {
	rate decimal.Decimal
	ok   bool
	err  error

	calls int
}

func (s *stubRateSource) OverrideRate(_ context.Context, _ order.ProviderRef) (decimal.Decimal, bool, error) {
	s.calls++
	return s.rate, s.ok, s.err
}

func mustMoney(t *testing.T, value float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(value)
	require.NoError(t, err)
	return m
}

func providerRef(t *testing.T, kind order.ProviderKind) *order.ProviderRef {
	t.Helper()
	ref, err := order.NewProviderRef(kernel.NewUUID(), kind)
	require.NoError(t, err)
	return &ref
}

func TestCommissionCalculatorDefaults(t *testing.T) {
	calculator := services.NewCommissionCalculator(nil)
	ctx := context.Background()

	t.Run("should split 20.00 delivery order at default 15 percent", func(t *testing.T) {
		result := calculator.Calculate(ctx, order.Delivery, mustMoney(t, 20.00), nil)

		assert.True(t, result.Rate.Equal(decimal.NewFromInt(15)))
		assert.True(t, result.Amount.Equals(mustMoney(t, 3.00)))
		assert.True(t, result.Payout.Equals(mustMoney(t, 17.00)))
	})

	t.Run("should apply the default rate per vertical", func(t *testing.T) {
		cases := map[order.Type]int64{
			order.Delivery:    15,
			order.Marketplace: 10,
			order.Sourcing:    5,
			order.Coaching:    10,
		}

		for orderType, rate := range cases {
			result := calculator.Calculate(ctx, orderType, mustMoney(t, 100.00), nil)

			assert.True(t, result.Rate.Equal(decimal.NewFromInt(rate)),
				"rate for %s", orderType)
		}
	})

	t.Run("should return zero split for zero gross", func(t *testing.T) {
		result := calculator.Calculate(ctx, order.Delivery, kernel.ZeroMoney(), nil)

		assert.True(t, result.Amount.IsZero())
		assert.True(t, result.Payout.IsZero())
	})

	t.Run("should reassemble gross exactly across awkward amounts", func(t *testing.T) {
		for _, gross := range []float64{0.01, 0.03, 9.99, 10.01, 33.33, 100.10, 249.99} {
			grossMoney := mustMoney(t, gross)

			result := calculator.Calculate(ctx, order.Marketplace, grossMoney, nil)

			assert.True(t, result.Amount.Add(result.Payout).Equals(grossMoney),
				"gross %v: %s + %s", gross, result.Amount, result.Payout)
		}
	})
}

func TestCommissionCalculatorOverrides(t *testing.T) {
	ctx := context.Background()

	t.Run("should apply seller override rate", func(t *testing.T) {
		src := &stubRateSource{rate: decimal.NewFromInt(8), ok: true}
		calculator := services.NewCommissionCalculator(src)

		result := calculator.Calculate(ctx, order.Marketplace, mustMoney(t, 30.00), providerRef(t, order.Seller))

		assert.True(t, result.Rate.Equal(decimal.NewFromInt(8)))
		assert.True(t, result.Amount.Equals(mustMoney(t, 2.40)))
		assert.True(t, result.Payout.Equals(mustMoney(t, 27.60)))
		assert.Equal(t, 1, src.calls)
	})

	t.Run("should apply sourcing agent override rate", func(t *testing.T) {
		src := &stubRateSource{rate: decimal.NewFromInt(7), ok: true}
		calculator := services.NewCommissionCalculator(src)

		result := calculator.Calculate(ctx, order.Sourcing, mustMoney(t, 100.00), providerRef(t, order.SourcingAgent))

		assert.True(t, result.Rate.Equal(decimal.NewFromInt(7)))
	})

	t.Run("should not consult source for kinds that cannot override", func(t *testing.T) {
		src := &stubRateSource{rate: decimal.NewFromInt(1), ok: true}
		calculator := services.NewCommissionCalculator(src)

		for _, kind := range []order.ProviderKind{order.Driver, order.LogisticsCompany} {
			result := calculator.Calculate(ctx, order.Delivery, mustMoney(t, 20.00), providerRef(t, kind))

			assert.True(t, result.Rate.Equal(decimal.NewFromInt(15)), "kind %s", kind)
		}
		assert.Zero(t, src.calls)

		result := calculator.Calculate(ctx, order.Coaching, mustMoney(t, 50.00), providerRef(t, order.ImportCoach))
		assert.True(t, result.Rate.Equal(decimal.NewFromInt(10)))
		assert.Zero(t, src.calls)
	})

	t.Run("should fall back to default when source fails", func(t *testing.T) {
		src := &stubRateSource{err: errors.New("connection refused")}
		calculator := services.NewCommissionCalculator(src)

		result := calculator.Calculate(ctx, order.Marketplace, mustMoney(t, 30.00), providerRef(t, order.Seller))

		assert.True(t, result.Rate.Equal(decimal.NewFromInt(10)))
		assert.True(t, result.Amount.Equals(mustMoney(t, 3.00)))
	})

	t.Run("should fall back to default when no override is stored", func(t *testing.T) {
		src := &stubRateSource{ok: false}
		calculator := services.NewCommissionCalculator(src)

		result := calculator.Calculate(ctx, order.Marketplace, mustMoney(t, 30.00), providerRef(t, order.Seller))

		assert.True(t, result.Rate.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should ignore out of range override rates", func(t *testing.T) {
		for _, rate := range []int64{-1, 101} {
			src := &stubRateSource{rate: decimal.NewFromInt(rate), ok: true}
			calculator := services.NewCommissionCalculator(src)

			result := calculator.Calculate(ctx, order.Marketplace, mustMoney(t, 30.00), providerRef(t, order.Seller))

			assert.True(t, result.Rate.Equal(decimal.NewFromInt(10)), "override %d", rate)
		}
	})
}

func TestCommissionCalculatorRounding(t *testing.T) {
	calculator := services.NewCommissionCalculator(nil)
	ctx := context.Background()

	t.Run("should round the half cent to the even neighbor", func(t *testing.T) {
		// 0.83 * 15% = 0.1245 -> 0.12, payout 0.71
		result := calculator.Calculate(ctx, order.Delivery, mustMoney(t, 0.83), nil)

		assert.True(t, result.Amount.Equals(mustMoney(t, 0.12)))
		assert.True(t, result.Payout.Equals(mustMoney(t, 0.71)))
	})
}
