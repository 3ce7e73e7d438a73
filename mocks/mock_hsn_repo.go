package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockHSNRepo is a mock implementation of port.HSNRepository.
type MockHSNRepo struct {
	mock.Mock
}

func (m *MockHSNRepo) List(ctx context.Context) ([]domain.HSN, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HSN), args.Error(1)
}

func (m *MockHSNRepo) GetByCode(ctx context.Context, code string) (*domain.HSN, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HSN), args.Error(1)
}

func (m *MockHSNRepo) Create(ctx context.Context, hsn *domain.HSN) error {
	args := m.Called(ctx, hsn)
	return args.Error(0)
}

func (m *MockHSNRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHSNRepo) GSTRate(ctx context.Context, code string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}
