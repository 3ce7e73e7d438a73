// Package render produces printable invoices: an HTML print view, a
// window-envelope address sheet and a PDF.
package render

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

// minPrintedRows pads the items table so short invoices keep the A4 layout.
const minPrintedRows = 6

type lineView struct {
	No          int
	HSNCode     string
	Description string
	Qty         string
	Unit        string
	Rate        string
	Amount      string
}

type taxRow struct {
	Label  string
	Amount string
}

type invoiceView struct {
	Company       config.CompanyConfig
	Title         string
	InvoiceNo     string
	Date          string
	TruckNo       string
	Payment       string
	Customer      domain.Customer
	Lines         []lineView
	Filler        []struct{}
	Taxable       string
	TaxRows       []taxRow
	TotalTax      string
	RoundOff      string
	ShowRoundOff  bool
	GrandTotal    string
	AmountInWords string
}

func buildView(company config.CompanyConfig, inv *domain.Invoice) invoiceView {
	v := invoiceView{
		Company:       company,
		Title:         title(inv.Type),
		InvoiceNo:     InvoiceNo(inv),
		Date:          inv.Date.Format("02/01/2006"),
		TruckNo:       orDefault(inv.TruckNo, "N/A"),
		Payment:       orDefault(string(inv.PaymentMode), string(domain.PaymentModeCredit)),
		Taxable:       money(inv.TaxableValue),
		TotalTax:      money(inv.CGST.Add(inv.SGST).Add(inv.IGST)),
		RoundOff:      signedMoney(inv.RoundOff),
		ShowRoundOff:  !inv.RoundOff.IsZero(),
		GrandTotal:    money(inv.GrandTotal),
		AmountInWords: gst.AmountInWords(inv.GrandTotal),
	}
	if inv.Customer != nil {
		v.Customer = *inv.Customer
	}

	for i, l := range inv.Lines {
		v.Lines = append(v.Lines, lineView{
			No:          i + 1,
			HSNCode:     orDefault(l.HSNCode, "-"),
			Description: orDefault(l.Description, "-"),
			Qty:         l.Quantity.String(),
			Unit:        orDefault(l.Unit, "-"),
			Rate:        money(l.Rate),
			Amount:      money(l.Amount),
		})
	}
	if n := minPrintedRows - len(v.Lines); n > 0 {
		v.Filler = make([]struct{}, n)
	}

	for _, t := range []struct {
		name   string
		amount decimal.Decimal
		share  decimal.Decimal
	}{
		{"CGST", inv.CGST, decimal.New(5, -1)},
		{"SGST", inv.SGST, decimal.New(5, -1)},
		{"IGST", inv.IGST, decimal.NewFromInt(1)},
	} {
		if !t.amount.IsPositive() {
			continue
		}
		v.TaxRows = append(v.TaxRows, taxRow{
			Label:  fmt.Sprintf("%s @%s%%", t.name, effectiveRate(inv, t.amount, t.share)),
			Amount: money(t.amount),
		})
	}
	return v
}

// effectiveRate prints the rate of a tax component. Mixed-rate invoices have
// no single rate, so the rate is derived from the amount instead.
func effectiveRate(inv *domain.Invoice, amount, share decimal.Decimal) string {
	if !inv.GSTRate.IsZero() {
		return inv.GSTRate.Mul(share).String()
	}
	if inv.TaxableValue.IsZero() {
		return "0"
	}
	return amount.Div(inv.TaxableValue).Shift(2).StringFixed(1)
}

// InvoiceNo renders the printed invoice number, e.g. "A/12".
func InvoiceNo(inv *domain.Invoice) string {
	return inv.Series + "/" + strconv.FormatInt(inv.Number, 10)
}

func title(t domain.InvoiceType) string {
	if t == domain.InvoiceTypeBillOfSupply {
		return "BILL OF SUPPLY"
	}
	return "GST TAX INVOICE"
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + money(d)
	}
	return money(d)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
