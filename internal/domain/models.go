package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a billed party. StateCode decides intra- vs inter-state tax.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	State     string    `db:"state" json:"state"`
	StateCode string    `db:"state_code" json:"state_code"`
	Address   string    `db:"address" json:"address"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HSN maps a Harmonized System of Nomenclature code to its GST rate.
type HSN struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Code           string          `db:"hsn_code" json:"hsn_code"`
	Description    string          `db:"description" json:"description"`
	GSTRatePercent decimal.Decimal `db:"gst_rate_percent" json:"gst_rate_percent"`
	ExemptForBOS   bool            `db:"exempt_for_bos" json:"exempt_for_bos"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Invoice is a persisted tax invoice or bill of supply. Lines are owned by
// the invoice and are never stored or deleted independently.
type Invoice struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Type         InvoiceType     `db:"type" json:"type"`
	Series       string          `db:"series" json:"series"`
	Number       int64           `db:"number" json:"number"`
	Date         time.Time       `db:"invoice_date" json:"date"`
	CustomerID   uuid.UUID       `db:"customer_id" json:"customer_id"`
	TruckNo      string          `db:"truck_no" json:"truck_no"`
	PaymentMode  PaymentMode     `db:"cash_credit" json:"cash_credit"`
	TaxableValue decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	CGST         decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGST         decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGST         decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	RoundOff     decimal.Decimal `db:"round_off" json:"round_off"`
	GrandTotal   decimal.Decimal `db:"grand_total" json:"grand_total"`
	GSTRate      decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`

	Lines    []InvoiceLine `db:"-" json:"lines,omitempty"`
	Customer *Customer     `db:"-" json:"customer,omitempty"`
}

// InvoiceLine is one line item of an invoice, identified by its position.
type InvoiceLine struct {
	InvoiceID   uuid.UUID       `db:"invoice_id" json:"-"`
	Position    int             `db:"position" json:"position"`
	HSNCode     string          `db:"hsn_code" json:"hsn_code"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"qty" json:"qty"`
	Unit        string          `db:"unit" json:"unit"`
	Rate        decimal.Decimal `db:"rate" json:"rate"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
}

// InvoiceSummary is the list view of an invoice joined with its customer.
type InvoiceSummary struct {
	Invoice
	CustomerName  string `db:"customer_name" json:"customer_name"`
	CustomerGSTIN string `db:"customer_gstin" json:"customer_gstin"`
	CustomerState string `db:"customer_state" json:"customer_state"`
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Type   InvoiceType
	Series string
	Offset int
	Limit  int
}
