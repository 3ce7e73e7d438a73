package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/gst"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Rupees Zero Only"},
		{"1", "Rupees One Only"},
		{"15", "Rupees Fifteen Only"},
		{"90", "Rupees Ninety Only"},
		{"1180", "Rupees One Thousand One Hundred Eighty Only"},
		{"118050.50", "Rupees One Lakh Eighteen Thousand Fifty and Fifty Paise Only"},
		{"100000", "Rupees One Lakh Only"},
		{"12345678", "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Only"},
		{"1000000000", "Rupees One Hundred Crore Only"},
		{"10.05", "Rupees Ten and Five Paise Only"},
		{"9.999", "Rupees Ten Only"},
		{"-25", "Minus Rupees Twenty Five Only"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, gst.AmountInWords(d(tt.amount)))
		})
	}
}
