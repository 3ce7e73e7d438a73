package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstbill/internal/domain"
	"gstbill/internal/logger"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var verr *domain.ValidationError
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "VALIDATION_ERROR", verr.Error()
	case errors.As(err, &conflict):
		return http.StatusConflict, "INVOICE_NUMBER_CONFLICT", conflict.Error() + "; retry the request"
	case errors.Is(err, domain.ErrLookupFailed):
		return http.StatusBadGateway, "LOOKUP_FAILED", "a required lookup failed; try again"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrHSNNotFound):
		return http.StatusNotFound, "HSN_NOT_FOUND", "hsn code not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateHSN):
		return http.StatusConflict, "DUPLICATE_HSN", "hsn code already exists"
	case errors.Is(err, domain.ErrCustomerHasInvoices):
		return http.StatusConflict, "CUSTOMER_HAS_INVOICES", "customer has invoices; delete them first"
	case errors.Is(err, domain.ErrUnsupportedImport):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrCustomerNoEmail):
		return http.StatusBadRequest, "CUSTOMER_NO_EMAIL", "customer has no email address"
	case errors.Is(err, domain.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "STORAGE_DISABLED", "invoice archive storage is not configured"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}

	apiErr := &APIError{Code: code, Message: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		apiErr.Field = verr.Field
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// parseID reads the :id path parameter. It writes a 400 response and
// returns false when the parameter is not a UUID.
func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads offset and limit query parameters.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
