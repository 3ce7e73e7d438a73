package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockCustomerService is a mock implementation of service.CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, input service.CustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerService) Update(ctx context.Context, id uuid.UUID, input service.UpdateCustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) BulkImport(ctx context.Context, customers []service.CustomerInput, clearFirst bool) (*service.ImportResult, error) {
	args := m.Called(ctx, customers, clearFirst)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockCustomerService) ImportFile(ctx context.Context, filename string, r io.Reader, clearFirst bool) (*service.ImportResult, error) {
	args := m.Called(ctx, filename, r, clearFirst)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockCustomerService) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
