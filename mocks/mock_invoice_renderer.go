package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockInvoiceRenderer is a mock implementation of port.InvoiceRenderer.
// When the expectation's first return value is a string, HTML and Envelope
// write it to w.
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) HTML(w io.Writer, inv *domain.Invoice) error {
	args := m.Called(w, inv)
	return writeRendered(w, args)
}

func (m *MockInvoiceRenderer) Envelope(w io.Writer, inv *domain.Invoice) error {
	args := m.Called(w, inv)
	return writeRendered(w, args)
}

func (m *MockInvoiceRenderer) PDF(inv *domain.Invoice) ([]byte, error) {
	args := m.Called(inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func writeRendered(w io.Writer, args mock.Arguments) error {
	if body, ok := args.Get(0).(string); ok {
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
		return args.Error(1)
	}
	return args.Error(0)
}
