package port

import "context"

// InvoiceEmail is a notification carrying a link to an archived invoice PDF.
type InvoiceEmail struct {
	ToEmail     string
	ToName      string
	InvoiceNo   string
	GrandTotal  string
	DownloadURL string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
