package gst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// LineItem is one invoice line as seen by the tax engine. Amount and GSTRate
// are outputs filled in by the engine.
type LineItem struct {
	HSNCode     string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	Rate        decimal.Decimal

	Amount  decimal.Decimal
	GSTRate decimal.Decimal
}

// LineAmount returns quantity × rate at full precision.
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}

// ValidateLines rejects an empty line set and negative quantities or rates.
func ValidateLines(lines []LineItem) error {
	if len(lines) == 0 {
		return domain.NewValidationError("lines", "at least one line item is required")
	}
	for i := range lines {
		if lines[i].Quantity.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].qty", i), "quantity must not be negative")
		}
		if lines[i].Rate.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].rate", i), "rate must not be negative")
		}
	}
	return nil
}

// AllocateLineAmounts returns a copy of lines with Amount set on each line,
// together with the unrounded sum of all amounts (the taxable value).
func AllocateLineAmounts(lines []LineItem) ([]LineItem, decimal.Decimal) {
	out := make([]LineItem, len(lines))
	sum := decimal.Zero
	for i := range lines {
		out[i] = lines[i]
		out[i].Amount = LineAmount(lines[i].Quantity, lines[i].Rate)
		sum = sum.Add(out[i].Amount)
	}
	return out, sum
}
