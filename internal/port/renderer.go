package port

import (
	"io"

	"gstbill/internal/domain"
)

// InvoiceRenderer produces printable documents for a stored invoice.
type InvoiceRenderer interface {
	HTML(w io.Writer, inv *domain.Invoice) error
	Envelope(w io.Writer, inv *domain.Invoice) error
	PDF(inv *domain.Invoice) ([]byte, error)
}
