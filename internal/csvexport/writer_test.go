package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, len(columns))
	assert.Equal(t, "Invoice No", row[0])
	assert.Equal(t, "Grand Total", row[15])
	assert.Equal(t, "Created At", row[len(row)-1])
}

func TestWriteInvoices(t *testing.T) {
	created := time.Date(2025, 4, 2, 10, 30, 0, 0, time.UTC)
	inv := domain.InvoiceSummary{
		Invoice: domain.Invoice{
			Type:         domain.InvoiceTypeTax,
			Series:       "A",
			Number:       12,
			Date:         time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			TruckNo:      "GJ01AB1234",
			PaymentMode:  domain.PaymentModeCredit,
			TaxableValue: decimal.RequireFromString("999.99"),
			IGST:         decimal.RequireFromString("179.9982"),
			RoundOff:     decimal.RequireFromString("0.0118"),
			GrandTotal:   decimal.RequireFromString("1180"),
			GSTRate:      decimal.RequireFromString("18"),
			CreatedAt:    created,
		},
		CustomerName:  "Shree Traders",
		CustomerGSTIN: "27ABCDE1234F1Z5",
		CustomerState: "Maharashtra",
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.InvoiceSummary{inv}))
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, "A/12", row[0])
	assert.Equal(t, "12", row[2])
	assert.Equal(t, "2025-04-01", row[3])
	assert.Equal(t, "TAX_INVOICE", row[4])
	assert.Equal(t, "Shree Traders", row[5])
	assert.Equal(t, "CREDIT", row[8])
	assert.Equal(t, "999.99", row[10])
	assert.Equal(t, "0.00", row[11])
	assert.Equal(t, "180.00", row[13])
	assert.Equal(t, "0.01", row[14])
	assert.Equal(t, "1180.00", row[15])
	assert.Equal(t, "18", row[16])
	assert.Equal(t, created.Format(time.RFC3339), row[17])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Invoice Register", "Invoice_Register"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"invoice number", "A/12", "A_12"},
		{"hyphens and underscores preserved", "tax-invoices_2025", "tax-invoices_2025"},
		{"consecutive underscores collapsed", "test___register", "test_register"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("Invoice Register", "csv")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Invoice_Register_"+today+".csv", filename)
}
