package handler_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService) {
	mockSvc := new(mocks.MockInvoiceService)
	return handler.NewInvoiceHandler(mockSvc), mockSvc
}

func invoiceBody() map[string]any {
	return map[string]any{
		"type":        "TAX_INVOICE",
		"customer_id": uuid.New().String(),
		"cash_credit": "CASH",
		"lines": []map[string]any{
			{"hsn_code": "7214", "description": "TMT bar", "qty": "10", "rate": "100"},
		},
	}
}

func idParam(id uuid.UUID) gin.Param {
	return gin.Param{Key: "id", Value: id.String()}
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	created := &domain.Invoice{ID: uuid.New(), Series: "A", Number: 42, GrandTotal: decimal.NewFromInt(1180)}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.InvoiceInput) bool {
		return in.Type == domain.InvoiceTypeTax && len(in.Lines) == 1 &&
			in.Lines[0].Quantity.Equal(decimal.NewFromInt(10)) && in.Number == nil
	})).Return(created, nil)

	c, w := newContext(http.MethodPost, "/api/v1/invoices", invoiceBody())
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["number"])
	assert.Equal(t, "1180", data["grand_total"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MissingLines(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	c, w := newContext(http.MethodPost, "/api/v1/invoices", map[string]any{"type": "TAX_INVOICE"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"number taken", &domain.ConflictError{Series: "A", Number: 42}, http.StatusConflict, "INVOICE_NUMBER_CONFLICT", ""},
		{"bad line", domain.NewValidationError("lines[0].qty", "quantity must be positive"), http.StatusBadRequest, "VALIDATION_ERROR", "lines[0].qty"},
		{"lookup failed", &domain.LookupFailure{What: "customer", Key: "x", Err: errors.New("conn reset")}, http.StatusBadGateway, "LOOKUP_FAILED", ""},
		{"customer missing", domain.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newInvoiceHandler()
			mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/api/v1/invoices", invoiceBody())
			h.Create(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestInvoiceHandler_Preview(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	preview := &service.InvoicePreview{}
	preview.TaxableValue = decimal.NewFromInt(1000)
	preview.GrandTotal = decimal.NewFromInt(1180)
	mockSvc.On("Preview", mock.Anything, mock.Anything).Return(preview, nil)

	c, w := newContext(http.MethodPost, "/api/v1/invoices/preview", invoiceBody())
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]any)
	assert.Equal(t, "1000", data["taxable_value"])
	assert.Equal(t, "1180", data["grand_total"])
}

func TestInvoiceHandler_List_UppercasesType(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("List", mock.Anything, domain.InvoiceFilter{
		Type: domain.InvoiceTypeBillOfSupply, Series: "B", Offset: 0, Limit: 20,
	}).Return([]domain.InvoiceSummary{}, 0, nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices?type=bill_of_supply&series=B", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_ListByType(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(f domain.InvoiceFilter) bool {
		return f.Type == domain.InvoiceTypeTax
	})).Return([]domain.InvoiceSummary{{Invoice: domain.Invoice{Series: "A", Number: 1}}}, 1, nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/type/tax_invoice", nil,
		gin.Param{Key: "type", Value: "tax_invoice"})
	h.ListByType(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Meta.Total)
}

func TestInvoiceHandler_NextNumber(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("NextNumber", mock.Anything, "A").Return(int64(8), nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/next/A", nil, gin.Param{Key: "series", Value: "A"})
	h.NextNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]any)
	assert.Equal(t, "A", data["series"])
	assert.Equal(t, float64(8), data["number"])
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/"+id.String(), nil, idParam(id))
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "INVOICE_NOT_FOUND", decode(t, w).Error.Code)
}

func TestInvoiceHandler_Update(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.Anything).Return(&domain.Invoice{ID: id, Series: "A", Number: 3}, nil)

	c, w := newContext(http.MethodPut, "/api/v1/invoices/"+id.String(), invoiceBody(), idParam(id))
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Delete_InvalidID(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	c, w := newContext(http.MethodDelete, "/api/v1/invoices/12", nil, gin.Param{Key: "id", Value: "12"})
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Print(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("RenderHTML", mock.Anything, id, mock.Anything).Return("<html>A/12</html>", nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/"+id.String()+"/print", nil, idParam(id))
	h.Print(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<html>A/12</html>", w.Body.String())
}

func TestInvoiceHandler_Envelope_NotFound(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("RenderEnvelope", mock.Anything, id, mock.Anything).Return(domain.ErrInvoiceNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/"+id.String()+"/envelope", nil, idParam(id))
	h.Envelope(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "INVOICE_NOT_FOUND", decode(t, w).Error.Code)
}

func TestInvoiceHandler_PDF(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("RenderPDF", mock.Anything, id).
		Return(&service.RenderedPDF{Filename: "A_12.pdf", Data: []byte("%PDF-1.7")}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/"+id.String()+"/pdf", nil, idParam(id))
	h.PDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="A_12.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7", w.Body.String())
}

func TestInvoiceHandler_Archive_StorageDisabled(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("Archive", mock.Anything, id).Return(nil, domain.ErrStorageDisabled)

	c, w := newContext(http.MethodPost, "/api/v1/invoices/"+id.String()+"/archive", nil, idParam(id))
	h.Archive(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "STORAGE_DISABLED", decode(t, w).Error.Code)
}

func TestInvoiceHandler_Email(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("Email", mock.Anything, id).Return(&service.ArchiveResult{
		Key: "invoices/A/A_12.pdf", URL: "https://example.com/a", ExpiresIn: 900,
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/invoices/"+id.String()+"/email", nil, idParam(id))
	h.Email(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]any)
	assert.Equal(t, "invoices/A/A_12.pdf", data["key"])
}

func TestInvoiceHandler_Email_NoAddress(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	id := uuid.New()
	mockSvc.On("Email", mock.Anything, id).Return(nil, domain.ErrCustomerNoEmail)

	c, w := newContext(http.MethodPost, "/api/v1/invoices/"+id.String()+"/email", nil, idParam(id))
	h.Email(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CUSTOMER_NO_EMAIL", decode(t, w).Error.Code)
}

func TestInvoiceHandler_Export(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("ExportCSV", mock.Anything, mock.Anything, domain.InvoiceFilter{Type: domain.InvoiceTypeTax}).
		Return("\ufeffSeries,Number\nA,12\n", nil)

	c, w := newContext(http.MethodGet, "/api/v1/invoices/export?type=tax_invoice", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="tax_invoice_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.csv"`), disposition)
	assert.True(t, strings.HasPrefix(w.Body.String(), "\ufeff"))
}

func TestInvoiceHandler_Export_UnknownType(t *testing.T) {
	h, mockSvc := newInvoiceHandler()
	mockSvc.On("ExportCSV", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.NewValidationError("type", "unknown invoice type %q", "X"))

	c, w := newContext(http.MethodGet, "/api/v1/invoices/export?type=x", nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "type", decode(t, w).Error.Field)
}
