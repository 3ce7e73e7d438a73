package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the invoice register header row.
var columns = []string{
	"Invoice No",
	"Series",
	"Number",
	"Date",
	"Type",
	"Customer",
	"Customer GSTIN",
	"Customer State",
	"Payment Mode",
	"Truck No",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Round Off",
	"Grand Total",
	"GST Rate",
	"Created At",
}

// Writer wraps csv.Writer for exporting the invoice register.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoice summaries to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.InvoiceSummary) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.InvoiceSummary) []string {
	return []string{
		InvoiceNo(inv.Series, inv.Number),
		inv.Series,
		strconv.FormatInt(inv.Number, 10),
		inv.Date.Format("2006-01-02"),
		string(inv.Type),
		inv.CustomerName,
		inv.CustomerGSTIN,
		inv.CustomerState,
		string(inv.PaymentMode),
		inv.TruckNo,
		formatMoney(inv.TaxableValue),
		formatMoney(inv.CGST),
		formatMoney(inv.SGST),
		formatMoney(inv.IGST),
		formatMoney(inv.RoundOff),
		formatMoney(inv.GrandTotal),
		inv.GSTRate.String(),
		inv.CreatedAt.Format(time.RFC3339),
	}
}

// InvoiceNo renders the printed invoice number, e.g. "A/12".
func InvoiceNo(series string, number int64) string {
	return fmt.Sprintf("%s/%d", series, number)
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
