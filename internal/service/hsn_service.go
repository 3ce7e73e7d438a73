package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
)

// CreateHSNInput is the DTO for registering an HSN code and its GST rate.
type CreateHSNInput struct {
	Code           string           `json:"hsn_code" binding:"required"`
	Description    string           `json:"description"`
	GSTRatePercent *decimal.Decimal `json:"gst_rate_percent" binding:"required" swaggertype:"string"`
	ExemptForBOS   bool             `json:"exempt_for_bos"`
}

// HSNService defines the HSN master data contract.
type HSNService interface {
	List(ctx context.Context) ([]domain.HSN, error)
	GetByCode(ctx context.Context, code string) (*domain.HSN, error)
	Create(ctx context.Context, input CreateHSNInput) (*domain.HSN, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type hsnService struct {
	repo port.HSNRepository
}

// NewHSNService creates a new HSNService implementation.
func NewHSNService(repo port.HSNRepository) HSNService {
	return &hsnService{repo: repo}
}

func (s *hsnService) List(ctx context.Context) ([]domain.HSN, error) {
	return s.repo.List(ctx)
}

func (s *hsnService) GetByCode(ctx context.Context, code string) (*domain.HSN, error) {
	return s.repo.GetByCode(ctx, strings.TrimSpace(code))
}

func (s *hsnService) Create(ctx context.Context, input CreateHSNInput) (*domain.HSN, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, domain.NewValidationError("hsn_code", "hsn code is required")
	}
	if !gst.ValidHSN(code) {
		return nil, domain.NewValidationError("hsn_code", "hsn code must be 4 to 8 digits, got %q", code)
	}
	if input.GSTRatePercent == nil {
		return nil, domain.NewValidationError("gst_rate_percent", "gst rate is required")
	}
	rate := *input.GSTRatePercent
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.NewValidationError("gst_rate_percent", "gst rate must be between 0 and 100, got %s", rate)
	}

	hsn := &domain.HSN{
		Code:           code,
		Description:    strings.TrimSpace(input.Description),
		GSTRatePercent: rate,
		ExemptForBOS:   input.ExemptForBOS,
	}
	if err := s.repo.Create(ctx, hsn); err != nil {
		return nil, err
	}
	return hsn, nil
}

func (s *hsnService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
