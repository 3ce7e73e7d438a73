package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, bucket string, obj port.ArchiveObject) error {
	args := m.Called(ctx, bucket, obj)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}
