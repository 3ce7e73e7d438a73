package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// CustomerRepository defines the contract for customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	// Delete fails with domain.ErrCustomerHasInvoices while invoices reference the customer.
	Delete(ctx context.Context, id uuid.UUID) error
	// BulkCreate inserts customers in one transaction. With clearFirst, all
	// invoice lines, invoices and customers are removed beforehand.
	BulkCreate(ctx context.Context, customers []domain.Customer, clearFirst bool) (int, error)
	// ClearAll removes every customer together with their invoices.
	ClearAll(ctx context.Context) error
}

// InvoiceRepository defines the contract for invoice persistence.
// An invoice header and its lines are always written in one transaction.
type InvoiceRepository interface {
	// Create returns a *domain.ConflictError when (series, number) is taken.
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, int, error)
	// Update rewrites the header and replaces every line.
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MaxNumber returns the highest number in series, or 0 if none.
	MaxNumber(ctx context.Context, series string) (int64, error)
}
