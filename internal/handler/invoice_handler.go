package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstbill/internal/csvexport"
	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Computes GST and allocates the next number in the series unless one is given.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 409 {object} ErrorResponseBody "Invoice number already taken; retryable"
// @Failure 502 {object} ErrorResponseBody "Rate or customer lookup failed"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// Preview handles POST /api/v1/invoices/preview
// @Summary Preview invoice totals
// @Description Computes the tax breakdown without saving anything.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice"
// @Success 200 {object} Response{data=service.InvoicePreview} "Computed totals"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param type query string false "TAX_INVOICE or BILL_OF_SUPPLY"
// @Param series query string false "Series"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.InvoiceSummary,meta=PagMeta} "Invoices"
// @Failure 400 {object} ErrorResponseBody "Unknown type"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	h.list(c, domain.InvoiceType(strings.ToUpper(c.Query("type"))))
}

// ListByType handles GET /api/v1/invoices/type/:type
// @Summary List invoices of one type
// @Tags invoices
// @Produce json
// @Param type path string true "TAX_INVOICE or BILL_OF_SUPPLY"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.InvoiceSummary,meta=PagMeta} "Invoices"
// @Failure 400 {object} ErrorResponseBody "Unknown type"
// @Security BearerAuth
// @Router /invoices/type/{type} [get]
func (h *InvoiceHandler) ListByType(c *gin.Context) {
	h.list(c, domain.InvoiceType(strings.ToUpper(c.Param("type"))))
}

func (h *InvoiceHandler) list(c *gin.Context, invoiceType domain.InvoiceType) {
	offset, limit := pagination(c)
	filter := domain.InvoiceFilter{
		Type:   invoiceType,
		Series: c.Query("series"),
		Offset: offset,
		Limit:  limit,
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// NextNumber handles GET /api/v1/invoices/next/:series
// @Summary Next invoice number
// @Description Returns max+1 for the series without reserving it.
// @Tags invoices
// @Produce json
// @Param series path string true "Series"
// @Success 200 {object} Response{data=NextNumberResponse} "Next number"
// @Security BearerAuth
// @Router /invoices/next/{series} [get]
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	series := c.Param("series")
	next, err := h.invoiceService.NextNumber(c.Request.Context(), series)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, NextNumberResponse{Series: strings.TrimSpace(series), Number: next})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice with lines and customer"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Update an invoice
// @Description Recomputes tax and replaces every line. The number is kept unless series or number change.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body InvoiceRequest true "Invoice"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice number already taken"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Description Deletes the invoice and its lines.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Invoice deleted"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// Print handles GET /api/v1/invoices/:id/print
// @Summary Printable invoice
// @Tags invoices
// @Produce html
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {string} string "HTML print view"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/print [get]
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.invoiceService.RenderHTML(c.Request.Context(), id, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Envelope handles GET /api/v1/invoices/:id/envelope
// @Summary Printable envelope
// @Tags invoices
// @Produce html
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {string} string "HTML envelope"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/envelope [get]
func (h *InvoiceHandler) Envelope(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.invoiceService.RenderEnvelope(c.Request.Context(), id, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// PDF handles GET /api/v1/invoices/:id/pdf
// @Summary Download invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {file} binary "Invoice PDF"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	pdf, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.Filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}

// Archive handles POST /api/v1/invoices/:id/archive
// @Summary Archive invoice PDF
// @Description Uploads the PDF to object storage and returns a presigned download URL.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=service.ArchiveResult} "Archived"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 503 {object} ErrorResponseBody "Storage not configured"
// @Security BearerAuth
// @Router /invoices/{id}/archive [post]
func (h *InvoiceHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	result, err := h.invoiceService.Archive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Email handles POST /api/v1/invoices/:id/email
// @Summary Email invoice to customer
// @Description Archives the PDF and emails the customer a download link.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=service.ArchiveResult} "Sent"
// @Failure 400 {object} ErrorResponseBody "Customer has no email"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 503 {object} ErrorResponseBody "Storage not configured"
// @Security BearerAuth
// @Router /invoices/{id}/email [post]
func (h *InvoiceHandler) Email(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	result, err := h.invoiceService.Email(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Export handles GET /api/v1/invoices/export
// @Summary Export invoice register
// @Description Download all matching invoices as CSV.
// @Tags invoices
// @Produce text/csv
// @Param type query string false "TAX_INVOICE or BILL_OF_SUPPLY"
// @Param series query string false "Series"
// @Success 200 {file} binary "CSV file"
// @Failure 400 {object} ErrorResponseBody "Unknown type"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	filter := domain.InvoiceFilter{
		Type:   domain.InvoiceType(strings.ToUpper(c.Query("type"))),
		Series: c.Query("series"),
	}

	var buf bytes.Buffer
	if err := h.invoiceService.ExportCSV(c.Request.Context(), &buf, filter); err != nil {
		HandleError(c, err)
		return
	}

	name := "invoices"
	if filter.Type != "" {
		name = strings.ToLower(string(filter.Type))
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(name, "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
