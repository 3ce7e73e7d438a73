package gst

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstbill/internal/domain"
)

// RatePolicy selects how GST rates are applied to an invoice.
type RatePolicy string

const (
	// RatePolicyPerLine taxes every line at its own HSN rate.
	RatePolicyPerLine RatePolicy = "per_line"
	// RatePolicyFirstLine applies the first line's HSN rate to the whole
	// invoice. Kept for compatibility with invoices issued by the old system.
	RatePolicyFirstLine RatePolicy = "first_line"
)

// MissingRatePolicy decides what happens when an HSN code has no rate.
type MissingRatePolicy string

const (
	// MissingRateReject fails the computation with a ValidationError.
	MissingRateReject MissingRatePolicy = "reject"
	// MissingRateZero taxes the line at 0% and logs a warning.
	MissingRateZero MissingRatePolicy = "zero"
)

// Config carries the jurisdiction and policy choices for a computation.
type Config struct {
	HomeStateCode     string
	RatePolicy        RatePolicy
	MissingRatePolicy MissingRatePolicy
}

// RateLookup resolves the GST percentage for an HSN code. found is false
// when the code is unknown; err is reserved for lookup failures.
type RateLookup interface {
	GSTRate(ctx context.Context, hsnCode string) (rate decimal.Decimal, found bool, err error)
}

// RateLookupFunc adapts a function to RateLookup.
type RateLookupFunc func(ctx context.Context, hsnCode string) (decimal.Decimal, bool, error)

// GSTRate calls f.
func (f RateLookupFunc) GSTRate(ctx context.Context, hsnCode string) (decimal.Decimal, bool, error) {
	return f(ctx, hsnCode)
}

// TaxBreakdown is the computed tax split of an invoice.
//
// TaxableValue + CGST + SGST + IGST + RoundOff == GrandTotal holds exactly,
// and GrandTotal is always a whole number.
type TaxBreakdown struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst_amount"`
	SGST         decimal.Decimal `json:"sgst_amount"`
	IGST         decimal.Decimal `json:"igst_amount"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	ExactTotal   decimal.Decimal `json:"exact_total"`
	RoundOff     decimal.Decimal `json:"round_off"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	// GSTRate is the single rate applied to the invoice, or zero when
	// lines carry different rates.
	GSTRate decimal.Decimal `json:"gst_rate"`
	// IntraState is true when CGST+SGST apply instead of IGST.
	IntraState bool `json:"intra_state"`
}

// Result is the output of a tax computation.
type Result struct {
	Breakdown TaxBreakdown
	Lines     []LineItem
}

// Calculator computes TaxBreakdowns. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	cfg    Config
	rates  RateLookup
	logger *zap.Logger
}

// NewCalculator creates a Calculator. A nil logger discards log output.
func NewCalculator(cfg Config, rates RateLookup, logger *zap.Logger) *Calculator {
	if cfg.RatePolicy == "" {
		cfg.RatePolicy = RatePolicyPerLine
	}
	if cfg.MissingRatePolicy == "" {
		cfg.MissingRatePolicy = MissingRateReject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{cfg: cfg, rates: rates, logger: logger}
}

// ComputeTax is a convenience wrapper around Calculator.Compute.
func ComputeTax(
	ctx context.Context,
	lines []LineItem,
	customerStateCode string,
	invoiceType domain.InvoiceType,
	cfg Config,
	rates RateLookup,
) (*Result, error) {
	return NewCalculator(cfg, rates, nil).Compute(ctx, lines, customerStateCode, invoiceType)
}

// Compute validates lines, derives line amounts and splits tax according to
// the customer's state and the invoice type. Input lines are not modified.
func (c *Calculator) Compute(
	ctx context.Context,
	lines []LineItem,
	customerStateCode string,
	invoiceType domain.InvoiceType,
) (*Result, error) {
	if !invoiceType.Valid() {
		return nil, domain.NewValidationError("type", "unknown invoice type %q", invoiceType)
	}
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	priced, taxable := AllocateLineAmounts(lines)
	bd := TaxBreakdown{
		TaxableValue: taxable,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		TotalTax:     decimal.Zero,
		GSTRate:      decimal.Zero,
	}

	if invoiceType == domain.InvoiceTypeBillOfSupply {
		for i := range priced {
			priced[i].GSTRate = decimal.Zero
		}
		finish(&bd)
		return &Result{Breakdown: bd, Lines: priced}, nil
	}

	var err error
	switch c.cfg.RatePolicy {
	case RatePolicyFirstLine:
		err = c.applyFirstLineRate(ctx, priced, &bd)
	case RatePolicyPerLine:
		err = c.applyPerLineRates(ctx, priced, &bd)
	default:
		err = fmt.Errorf("gst: unknown rate policy %q", c.cfg.RatePolicy)
	}
	if err != nil {
		return nil, err
	}

	bd.IntraState = strings.TrimSpace(customerStateCode) == strings.TrimSpace(c.cfg.HomeStateCode)
	if bd.IntraState {
		bd.CGST = bd.TotalTax.Mul(half)
		bd.SGST = bd.TotalTax.Mul(half)
	} else {
		bd.IGST = bd.TotalTax
	}

	finish(&bd)
	return &Result{Breakdown: bd, Lines: priced}, nil
}

// finish derives the exact total, the rounded grand total and the round-off.
func finish(bd *TaxBreakdown) {
	bd.ExactTotal = bd.TaxableValue.Add(bd.CGST).Add(bd.SGST).Add(bd.IGST)
	bd.GrandTotal = RoundToRupee(bd.ExactTotal)
	bd.RoundOff = bd.GrandTotal.Sub(bd.ExactTotal)
}

func (c *Calculator) applyFirstLineRate(ctx context.Context, lines []LineItem, bd *TaxBreakdown) error {
	rate, err := c.rate(ctx, 0, strings.TrimSpace(lines[0].HSNCode))
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].GSTRate = rate
	}
	bd.GSTRate = rate
	bd.TotalTax = percentOf(bd.TaxableValue, rate)
	return nil
}

func (c *Calculator) applyPerLineRates(ctx context.Context, lines []LineItem, bd *TaxBreakdown) error {
	seen := make(map[string]decimal.Decimal, len(lines))
	total := decimal.Zero
	uniform := true
	for i := range lines {
		code := strings.TrimSpace(lines[i].HSNCode)
		rate, ok := seen[code]
		if !ok {
			var err error
			rate, err = c.rate(ctx, i, code)
			if err != nil {
				return err
			}
			seen[code] = rate
		}
		lines[i].GSTRate = rate
		total = total.Add(percentOf(lines[i].Amount, rate))
		if i > 0 && !rate.Equal(lines[0].GSTRate) {
			uniform = false
		}
	}
	if uniform {
		bd.GSTRate = lines[0].GSTRate
	}
	bd.TotalTax = total
	return nil
}

// rate resolves the GST rate of the line at idx, applying the missing-rate policy.
func (c *Calculator) rate(ctx context.Context, idx int, hsnCode string) (decimal.Decimal, error) {
	field := fmt.Sprintf("lines[%d].hsn_code", idx)
	if hsnCode == "" {
		if c.cfg.MissingRatePolicy == MissingRateZero {
			c.logger.Warn("line has no HSN code, taxing at 0%", zap.Int("line", idx))
			return decimal.Zero, nil
		}
		return decimal.Zero, domain.NewValidationError(field, "HSN code is required on tax invoices")
	}

	rate, found, err := c.rates.GSTRate(ctx, hsnCode)
	if err != nil {
		return decimal.Zero, &domain.LookupFailure{What: "gst rate", Key: hsnCode, Err: err}
	}
	if !found {
		if c.cfg.MissingRatePolicy == MissingRateZero {
			c.logger.Warn("unknown HSN code, taxing at 0% per missing_rate_policy=zero",
				zap.String("hsn_code", hsnCode), zap.Int("line", idx))
			return decimal.Zero, nil
		}
		return decimal.Zero, domain.NewValidationError(field, "no GST rate configured for HSN code %q", hsnCode)
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return decimal.Zero, domain.NewValidationError(field, "GST rate %s for HSN code %q is outside 0-100", rate, hsnCode)
	}
	return rate, nil
}
