package gst_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstbill/internal/gst"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: expected %s, got %s", field, want, got.String())
}

func line(hsn, qty, rate string) gst.LineItem {
	return gst.LineItem{HSNCode: hsn, Description: "item " + hsn, Quantity: d(qty), Unit: "NOS", Rate: d(rate)}
}

// fakeRates is an in-memory RateLookup that counts calls per code.
type fakeRates struct {
	mu    sync.Mutex
	rates map[string]string
	calls map[string]int
	err   error
}

func newFakeRates(rates map[string]string) *fakeRates {
	return &fakeRates{rates: rates, calls: map[string]int{}}
}

func (f *fakeRates) GSTRate(_ context.Context, code string) (decimal.Decimal, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[code]++
	if f.err != nil {
		return decimal.Zero, false, f.err
	}
	r, ok := f.rates[code]
	if !ok {
		return decimal.Zero, false, nil
	}
	return d(r), true, nil
}

var errBoom = errors.New("boom")

func homeConfig() gst.Config {
	return gst.Config{
		HomeStateCode:     "24",
		RatePolicy:        gst.RatePolicyPerLine,
		MissingRatePolicy: gst.MissingRateReject,
	}
}
