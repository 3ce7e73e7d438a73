package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Preview(ctx context.Context, input service.InvoiceInput) (*service.InvoicePreview, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoicePreview), args.Error(1)
}

func (m *MockInvoiceService) Create(ctx context.Context, input service.InvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Update(ctx context.Context, id uuid.UUID, input service.InvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceSummary), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) NextNumber(ctx context.Context, series string) (int64, error) {
	args := m.Called(ctx, series)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceService) RenderHTML(ctx context.Context, id uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, id, w)
	return writeRendered(w, args)
}

func (m *MockInvoiceService) RenderEnvelope(ctx context.Context, id uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, id, w)
	return writeRendered(w, args)
}

func (m *MockInvoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (*service.RenderedPDF, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedPDF), args.Error(1)
}

func (m *MockInvoiceService) Archive(ctx context.Context, id uuid.UUID) (*service.ArchiveResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

func (m *MockInvoiceService) Email(ctx context.Context, id uuid.UUID) (*service.ArchiveResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

// ExportCSV writes the expectation's first return value to w when it is a string.
func (m *MockInvoiceService) ExportCSV(ctx context.Context, w io.Writer, filter domain.InvoiceFilter) error {
	args := m.Called(ctx, w, filter)
	return writeRendered(w, args)
}
