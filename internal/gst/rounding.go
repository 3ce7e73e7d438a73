package gst

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// RoundToRupee rounds d to a whole currency unit, half away from zero.
// It is the only rounding step applied to invoice money.
func RoundToRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// percentOf returns amount × pct / 100 without losing precision.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}
