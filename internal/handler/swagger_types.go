package handler

import (
	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// Decimal amounts travel as JSON strings.

// InvoiceLineRequest represents one line of an invoice request.
type InvoiceLineRequest struct {
	HSNCode     string `json:"hsn_code" example:"7214"`
	Description string `json:"description" example:"TMT bars 12mm"`
	Quantity    string `json:"qty" example:"10"`
	Unit        string `json:"unit" example:"kg"`
	Rate        string `json:"rate" example:"100.00"`
}

// InvoiceRequest represents the invoice create, update and preview body.
type InvoiceRequest struct {
	Type        string               `json:"type" binding:"required" example:"TAX_INVOICE"`
	Series      string               `json:"series" example:"A"`
	Number      *int64               `json:"number" example:"42"`
	Date        string               `json:"date" example:"2026-04-01"`
	CustomerID  uuid.UUID            `json:"customer_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TruckNo     string               `json:"truck_no" example:"GJ01AB1234"`
	PaymentMode string               `json:"cash_credit" example:"CREDIT"`
	Lines       []InvoiceLineRequest `json:"lines" binding:"required"`
}

// CreateHSNRequest represents the create HSN body.
type CreateHSNRequest struct {
	Code           string `json:"hsn_code" binding:"required" example:"7214"`
	Description    string `json:"description" example:"Bars and rods of iron"`
	GSTRatePercent string `json:"gst_rate_percent" binding:"required" example:"18"`
	ExemptForBOS   bool   `json:"exempt_for_bos" example:"false"`
}

// --- Response Types ---

// NextNumberResponse represents the next invoice number of a series.
type NextNumberResponse struct {
	Series string `json:"series" example:"A"`
	Number int64  `json:"number" example:"43"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
