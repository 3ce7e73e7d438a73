package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"gstbill/internal/domain"
)

var (
	headerStyle = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center}
	cellStyle   = props.Text{Size: 9, Align: align.Center}
	numStyle    = props.Text{Size: 9, Align: align.Right}
	labelStyle  = props.Text{Size: 9, Style: fontstyle.Bold}
)

// PDF renders inv as an A4 PDF document.
func (r *Renderer) PDF(inv *domain.Invoice) ([]byte, error) {
	v := buildView(r.company, inv)

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	// Company block
	m.AddRow(9, text.NewCol(12, v.Company.Name, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	if v.Company.Tagline != "" {
		m.AddRow(6, text.NewCol(12, v.Company.Tagline, props.Text{Size: 10, Align: align.Center}))
	}
	m.AddRow(5, text.NewCol(12, v.Company.Address, props.Text{Size: 9, Align: align.Center}))
	m.AddRow(5, text.NewCol(12,
		fmt.Sprintf("GSTIN: %s | State: %s (%s)", v.Company.GSTIN, v.Company.State, v.Company.StateCode),
		props.Text{Size: 9, Align: align.Center}))
	m.AddRow(2, line.NewCol(12))
	m.AddRow(9, text.NewCol(12, v.Title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center, Top: 1}))

	// Buyer and invoice details
	m.AddRow(24,
		col.New(8).Add(
			text.New("BILL TO:", labelStyle),
			text.New(orDefault(v.Customer.Name, "N/A"), props.Text{Size: 9, Top: 5, Style: fontstyle.Bold}),
			text.New(v.Customer.Address, props.Text{Size: 9, Top: 9}),
			text.New("GSTIN: "+orDefault(v.Customer.GSTIN, "Not Registered"), props.Text{Size: 9, Top: 14}),
			text.New(fmt.Sprintf("State: %s (%s)", orDefault(v.Customer.State, "N/A"), orDefault(v.Customer.StateCode, "-")),
				props.Text{Size: 9, Top: 18}),
		),
		col.New(4).Add(
			text.New("Invoice No: "+v.InvoiceNo, labelStyle),
			text.New("Date: "+v.Date, props.Text{Size: 9, Top: 5}),
			text.New("Truck No: "+v.TruckNo, props.Text{Size: 9, Top: 9}),
			text.New("Payment: "+v.Payment, props.Text{Size: 9, Top: 13}),
		),
	)

	// Items
	m.AddRow(7,
		text.NewCol(1, "S.No", headerStyle),
		text.NewCol(2, "HSN", headerStyle),
		text.NewCol(4, "Description", headerStyle),
		text.NewCol(1, "Qty", headerStyle),
		text.NewCol(1, "Unit", headerStyle),
		text.NewCol(1, "Rate", headerStyle),
		text.NewCol(2, "Amount", headerStyle),
	)
	m.AddRow(1, line.NewCol(12))
	for _, l := range v.Lines {
		m.AddRow(7,
			text.NewCol(1, fmt.Sprintf("%d", l.No), cellStyle),
			text.NewCol(2, l.HSNCode, cellStyle),
			text.NewCol(4, l.Description, props.Text{Size: 9}),
			text.NewCol(1, l.Qty, cellStyle),
			text.NewCol(1, l.Unit, cellStyle),
			text.NewCol(1, l.Rate, numStyle),
			text.NewCol(2, l.Amount, numStyle),
		)
	}
	m.AddRow(2, line.NewCol(12))

	// Totals
	addTotal := func(label, amount string, style props.Text) {
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, label, props.Text{Size: style.Size, Style: style.Style}),
			text.NewCol(2, amount, props.Text{Size: style.Size, Style: style.Style, Align: align.Right}),
		)
	}
	plain := props.Text{Size: 9}
	addTotal("Taxable Value", v.Taxable, plain)
	for _, t := range v.TaxRows {
		addTotal(t.Label, t.Amount, plain)
	}
	addTotal("Total Tax", v.TotalTax, plain)
	if v.ShowRoundOff {
		addTotal("Round Off", v.RoundOff, plain)
	}
	addTotal("GRAND TOTAL", v.GrandTotal, props.Text{Size: 11, Style: fontstyle.Bold})

	m.AddRow(10, text.NewCol(12, "Amount in words: "+v.AmountInWords, props.Text{Size: 9, Style: fontstyle.Italic, Top: 3}))

	// Bank and signature
	m.AddRow(24,
		col.New(8).Add(
			text.New("BANK DETAILS", labelStyle),
			text.New(v.Company.Bank.Name, props.Text{Size: 9, Top: 5}),
			text.New("A/c No: "+v.Company.Bank.Account, props.Text{Size: 9, Top: 9}),
			text.New("IFSC: "+v.Company.Bank.IFSC, props.Text{Size: 9, Top: 13}),
			text.New("Branch: "+v.Company.Bank.Branch, props.Text{Size: 9, Top: 17}),
		),
		col.New(4).Add(
			text.New("For "+v.Company.Name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}),
			text.New("Authorised Signatory", props.Text{Size: 8, Top: 18, Align: align.Center}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
