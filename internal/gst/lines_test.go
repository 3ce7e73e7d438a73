package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/gst"
)

func TestAllocateLineAmounts_KeepsFullPrecision(t *testing.T) {
	lines := []gst.LineItem{line("4412", "2.5", "10.333"), line("4418", "0.333", "3")}

	out, sum := gst.AllocateLineAmounts(lines)

	require.Len(t, out, 2)
	assertDec(t, "25.8325", out[0].Amount, "lines[0].amount")
	assertDec(t, "0.999", out[1].Amount, "lines[1].amount")
	assertDec(t, "26.8315", sum, "sum")
	assert.True(t, lines[0].Amount.IsZero(), "input must not be modified")
}

func TestAllocateLineAmounts_ZeroQuantity(t *testing.T) {
	out, sum := gst.AllocateLineAmounts([]gst.LineItem{line("4412", "0", "500")})

	assertDec(t, "0", out[0].Amount, "amount")
	assertDec(t, "0", sum, "sum")
}

func TestValidateLines(t *testing.T) {
	assert.NoError(t, gst.ValidateLines([]gst.LineItem{line("4412", "0", "0")}))
	assert.Error(t, gst.ValidateLines(nil))
	assert.Error(t, gst.ValidateLines([]gst.LineItem{line("4412", "-1", "1")}))
}

func TestRoundToRupee(t *testing.T) {
	tests := map[string]string{
		"1179.9882": "1180",
		"1460.56":   "1461",
		"1460.49":   "1460",
		"100.5":     "101",
		"-100.5":    "-101",
		"0.4999":    "0",
	}
	for in, want := range tests {
		assertDec(t, want, gst.RoundToRupee(d(in)), in)
	}
}
