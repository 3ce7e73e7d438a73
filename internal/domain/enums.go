package domain

// InvoiceType distinguishes taxable invoices from tax-exempt bills of supply.
type InvoiceType string

const (
	InvoiceTypeTax          InvoiceType = "TAX_INVOICE"
	InvoiceTypeBillOfSupply InvoiceType = "BILL_OF_SUPPLY"
)

// Valid reports whether t is a known invoice type.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeTax || t == InvoiceTypeBillOfSupply
}

// PaymentMode records whether an invoice was settled in cash or on credit.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeCredit PaymentMode = "CREDIT"
)

// Valid reports whether m is a known payment mode. An empty mode is allowed.
func (m PaymentMode) Valid() bool {
	return m == "" || m == PaymentModeCash || m == PaymentModeCredit
}

// ImportFormat enumerates the accepted customer import file formats.
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// AllowedImportExtensions maps file extensions (without dot) to ImportFormat.
var AllowedImportExtensions = map[string]ImportFormat{
	"csv":  ImportFormatCSV,
	"xlsx": ImportFormatXLSX,
}
