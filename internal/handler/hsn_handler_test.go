package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newHSNHandler() (*handler.HSNHandler, *mocks.MockHSNService) {
	mockSvc := new(mocks.MockHSNService)
	return handler.NewHSNHandler(mockSvc), mockSvc
}

func TestHSNHandler_List(t *testing.T) {
	h, mockSvc := newHSNHandler()
	mockSvc.On("List", mock.Anything).Return([]domain.HSN{
		{Code: "7214", GSTRatePercent: decimal.NewFromInt(18)},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/hsn", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.([]any)
	assert.Len(t, data, 1)
}

func TestHSNHandler_GetByCode_NotFound(t *testing.T) {
	h, mockSvc := newHSNHandler()
	mockSvc.On("GetByCode", mock.Anything, "9999").Return(nil, domain.ErrHSNNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/hsn/code/9999", nil, gin.Param{Key: "code", Value: "9999"})
	h.GetByCode(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "HSN_NOT_FOUND", decode(t, w).Error.Code)
}

func TestHSNHandler_Create(t *testing.T) {
	h, mockSvc := newHSNHandler()
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateHSNInput) bool {
		return in.Code == "1006" && in.GSTRatePercent != nil && in.GSTRatePercent.Equal(decimal.NewFromInt(5))
	})).Return(&domain.HSN{ID: uuid.New(), Code: "1006", GSTRatePercent: decimal.NewFromInt(5)}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/hsn", map[string]any{
		"hsn_code": "1006", "description": "Rice", "gst_rate_percent": "5",
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHSNHandler_Create_MissingRate(t *testing.T) {
	h, mockSvc := newHSNHandler()

	c, w := newContext(http.MethodPost, "/api/v1/hsn", map[string]any{"hsn_code": "1006"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHSNHandler_Create_Duplicate(t *testing.T) {
	h, mockSvc := newHSNHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateHSN)

	c, w := newContext(http.MethodPost, "/api/v1/hsn", map[string]any{
		"hsn_code": "1006", "gst_rate_percent": "5",
	})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHSNHandler_Delete(t *testing.T) {
	h, mockSvc := newHSNHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	c, w := newContext(http.MethodDelete, "/api/v1/hsn/"+id.String(), nil, gin.Param{Key: "id", Value: id.String()})
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
