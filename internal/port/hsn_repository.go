package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// HSNRepository defines the contract for HSN code data access.
// It also serves as the tax engine's gst.RateLookup.
type HSNRepository interface {
	List(ctx context.Context) ([]domain.HSN, error)
	GetByCode(ctx context.Context, code string) (*domain.HSN, error)
	Create(ctx context.Context, hsn *domain.HSN) error
	Delete(ctx context.Context, id uuid.UUID) error
	GSTRate(ctx context.Context, code string) (decimal.Decimal, bool, error)
}
