package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceSummary), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepo) MaxNumber(ctx context.Context, series string) (int64, error) {
	args := m.Called(ctx, series)
	return args.Get(0).(int64), args.Error(1)
}
