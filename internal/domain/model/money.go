package model

import "github.com/shopspring/decimal"

// Money is an amount expressed in minor currency units (cents).
type Money int64

const centsExponent = -2

// MoneyFromDecimal converts an exact amount to cents rounding half to even.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.RoundBank(2).Shift(2).IntPart())
}

// MoneyFromFloat converts a major-unit float (e.g. 12.99) to cents.
func MoneyFromFloat(f float64) Money {
	return MoneyFromDecimal(decimal.NewFromFloat(f))
}

// Decimal returns the exact major-unit value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), centsExponent)
}

// Float64 returns the major-unit value for JSON responses.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
