package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places monetary amounts are kept at.
const moneyScale = 2

// Money is a value object representing a non-negative monetary amount.
// It wraps a decimal value to avoid binary floating point drift in financial
// arithmetic, and rounds with banker's rounding so that splitting an amount
// into commission and payout always reassembles exactly.
//
// The zero value of Money is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount.
// Returns an error if the value is negative, NaN, or infinite.
func NewMoneyFromFloat(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not a finite number", value))
	}
	return NewMoney(decimal.NewFromFloat(value))
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	return NewMoney(result)
}

// MulInt returns the amount multiplied by a non-negative integer factor.
// Negative factors are clamped to zero.
func (m Money) MulInt(factor int) Money {
	if factor < 0 {
		factor = 0
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// MulPercent returns amount * rate / 100, rounded to two decimal places with
// banker's rounding. This is the commission split primitive: for any rate in
// [0, 100], m.MulPercent(rate) + (m - m.MulPercent(rate)) == m exactly.
func (m Money) MulPercent(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Div(decimal.NewFromInt(100)).RoundBank(moneyScale)}
}

// RoundBank returns the amount rounded to two decimal places using banker's
// rounding.
func (m Money) RoundBank() Money {
	return Money{amount: m.amount.RoundBank(moneyScale)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equals compares two amounts by value.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan reports whether the amount exceeds the other amount.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Float64 returns the amount as a float64. Intended for read models and
// serialization, not for arithmetic.
func (m Money) Float64() float64 {
	value, _ := m.amount.Float64()
	return value
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixedBank(moneyScale)
}
