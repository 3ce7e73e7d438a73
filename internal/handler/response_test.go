package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("lines", "at least one line item is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &domain.ConflictError{Series: "A", Number: 7}, http.StatusConflict, "INVOICE_NUMBER_CONFLICT"},
		{"wrapped conflict", fmt.Errorf("persist: %w", &domain.ConflictError{Series: "A", Number: 7}), http.StatusConflict, "INVOICE_NUMBER_CONFLICT"},
		{"lookup failure", &domain.LookupFailure{What: "gst rate", Key: "7214", Err: errors.New("timeout")}, http.StatusBadGateway, "LOOKUP_FAILED"},
		{"customer not found", domain.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
		{"invoice not found", domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{"hsn not found", domain.ErrHSNNotFound, http.StatusNotFound, "HSN_NOT_FOUND"},
		{"duplicate hsn", domain.ErrDuplicateHSN, http.StatusConflict, "DUPLICATE_HSN"},
		{"customer has invoices", domain.ErrCustomerHasInvoices, http.StatusConflict, "CUSTOMER_HAS_INVOICES"},
		{"unsupported import", fmt.Errorf("%w: \".pdf\"", domain.ErrUnsupportedImport), http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"no email", domain.ErrCustomerNoEmail, http.StatusBadRequest, "CUSTOMER_NO_EMAIL"},
		{"storage disabled", domain.ErrStorageDisabled, http.StatusServiceUnavailable, "STORAGE_DISABLED"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
