package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/importer"
	"gstbill/internal/logger"
	"gstbill/internal/port"
)

// CustomerInput is the DTO for creating a customer.
type CustomerInput struct {
	Name      string `json:"name" binding:"required"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Address   string `json:"address"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
}

// UpdateCustomerInput is the DTO for a partial customer update.
type UpdateCustomerInput struct {
	Name      *string `json:"name"`
	GSTIN     *string `json:"gstin"`
	State     *string `json:"state"`
	StateCode *string `json:"state_code"`
	Address   *string `json:"address"`
	Mobile    *string `json:"mobile"`
	Email     *string `json:"email"`
}

// ImportResult reports the outcome of a bulk customer import.
type ImportResult struct {
	Inserted int  `json:"inserted"`
	Total    int  `json:"total"`
	Cleared  bool `json:"cleared"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkImport(ctx context.Context, customers []CustomerInput, clearFirst bool) (*ImportResult, error)
	ImportFile(ctx context.Context, filename string, r io.Reader, clearFirst bool) (*ImportResult, error)
	ClearAll(ctx context.Context) error
}

type customerService struct {
	repo    port.CustomerRepository
	company config.CompanyConfig
}

// NewCustomerService creates a new CustomerService implementation. Blank
// states default to the issuing company's state.
func NewCustomerService(repo port.CustomerRepository, company config.CompanyConfig) CustomerService {
	return &customerService{repo: repo, company: company}
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	c := s.fromInput(input)
	if err := validateCustomer(c, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&c.Name, input.Name)
	apply(&c.GSTIN, input.GSTIN)
	apply(&c.State, input.State)
	apply(&c.StateCode, input.StateCode)
	apply(&c.Address, input.Address)
	apply(&c.Mobile, input.Mobile)
	apply(&c.Email, input.Email)
	c.GSTIN = strings.ToUpper(c.GSTIN)
	s.applyDefaults(c)

	if err := validateCustomer(c, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *customerService) BulkImport(ctx context.Context, inputs []CustomerInput, clearFirst bool) (*ImportResult, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("customers", "at least one customer is required")
	}

	customers := make([]domain.Customer, len(inputs))
	for i := range inputs {
		c := s.fromInput(inputs[i])
		if err := validateCustomer(c, fmt.Sprintf("customers[%d].", i)); err != nil {
			return nil, err
		}
		customers[i] = *c
	}

	inserted, err := s.repo.BulkCreate(ctx, customers, clearFirst)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("customers imported",
		zap.Int("inserted", inserted), zap.Bool("clear_first", clearFirst))
	return &ImportResult{Inserted: inserted, Total: len(inputs), Cleared: clearFirst}, nil
}

func (s *customerService) ImportFile(ctx context.Context, filename string, r io.Reader, clearFirst bool) (*ImportResult, error) {
	parsed, err := importer.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	inputs := make([]CustomerInput, len(parsed))
	for i := range parsed {
		p := &parsed[i]
		inputs[i] = CustomerInput{
			Name: p.Name, GSTIN: p.GSTIN, State: p.State, StateCode: p.StateCode,
			Address: p.Address, Mobile: p.Mobile, Email: p.Email,
		}
	}
	return s.BulkImport(ctx, inputs, clearFirst)
}

func (s *customerService) ClearAll(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Warn("all customers, invoices and invoice lines cleared")
	return nil
}

func (s *customerService) fromInput(input CustomerInput) *domain.Customer {
	c := &domain.Customer{
		Name:      strings.TrimSpace(input.Name),
		GSTIN:     strings.ToUpper(strings.TrimSpace(input.GSTIN)),
		State:     strings.TrimSpace(input.State),
		StateCode: strings.TrimSpace(input.StateCode),
		Address:   strings.TrimSpace(input.Address),
		Mobile:    strings.TrimSpace(input.Mobile),
		Email:     strings.TrimSpace(input.Email),
	}
	s.applyDefaults(c)
	return c
}

// applyDefaults fills a blank state code from the GSTIN prefix, and a still
// blank state from the company's home state.
func (s *customerService) applyDefaults(c *domain.Customer) {
	if c.StateCode == "" && len(c.GSTIN) == gstinLength {
		c.StateCode = c.GSTIN[:2]
	}
	if c.StateCode == "" {
		c.StateCode = s.company.StateCode
		if c.State == "" {
			c.State = s.company.State
		}
	}
	if c.State == "" && c.StateCode == s.company.StateCode {
		c.State = s.company.State
	}
}

const gstinLength = 15

func validateCustomer(c *domain.Customer, prefix string) error {
	if c.Name == "" {
		return domain.NewValidationError(prefix+"name", "name is required")
	}
	if !gst.ValidStateCode(c.StateCode) {
		return domain.NewValidationError(prefix+"state_code", "invalid GST state code %q", c.StateCode)
	}
	if c.GSTIN == "" {
		return nil
	}
	if !gst.ValidGSTIN(c.GSTIN) {
		return domain.NewValidationError(prefix+"gstin", "GSTIN %q is not in the 15-character format", c.GSTIN)
	}
	if err := gst.CheckGSTINState(c.GSTIN, c.StateCode); err != nil {
		return domain.NewValidationError(prefix+"gstin", "%v", err)
	}
	return nil
}
