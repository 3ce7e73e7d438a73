package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// CustomerHandler handles customer management endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// BulkCustomersRequest is the body of POST /customers/bulk.
type BulkCustomersRequest struct {
	Customers  []service.CustomerInput `json:"customers" binding:"required,dive"`
	ClearFirst bool                    `json:"clear_first"`
}

// Create handles POST /api/v1/customers
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body service.CustomerInput true "Customer details"
// @Success 201 {object} Response{data=domain.Customer} "Customer created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, customer)
}

// List handles GET /api/v1/customers
// @Summary List customers
// @Description List customers ordered by name
// @Tags customers
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Customer,meta=PagMeta} "List of customers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	customers, total, err := h.customerService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/customers/:id
// @Summary Get customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} Response{data=domain.Customer} "Customer details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// Update handles PUT /api/v1/customers/:id
// @Summary Update a customer
// @Description Update only the fields present in the body
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param request body service.UpdateCustomerInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Customer} "Customer updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var input service.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
// @Summary Delete a customer
// @Description Fails with 409 while invoices reference the customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Customer deleted"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 409 {object} ErrorResponseBody "Customer has invoices"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "customer deleted"})
}

// Bulk handles POST /api/v1/customers/bulk
// @Summary Bulk insert customers
// @Description Insert many customers in one transaction, optionally clearing all customers and invoices first
// @Tags customers
// @Accept json
// @Produce json
// @Param request body BulkCustomersRequest true "Customers"
// @Success 201 {object} Response{data=service.ImportResult} "Customers imported"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /customers/bulk [post]
func (h *CustomerHandler) Bulk(c *gin.Context) {
	var req BulkCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.customerService.BulkImport(c.Request.Context(), req.Customers, req.ClearFirst)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Import handles POST /api/v1/customers/import
// @Summary Import customers from a file
// @Description Upload a CSV or XLSX sheet with columns name, gstin, state, state_code, address, mobile, email
// @Tags customers
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Param clear_first formData bool false "Delete all customers and invoices before importing"
// @Success 201 {object} Response{data=service.ImportResult} "Customers imported"
// @Failure 400 {object} ErrorResponseBody "Missing file, bad row or unsupported type"
// @Security BearerAuth
// @Router /customers/import [post]
func (h *CustomerHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	clearFirst, _ := strconv.ParseBool(c.PostForm("clear_first"))

	result, err := h.customerService.ImportFile(c.Request.Context(), header.Filename, file, clearFirst)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ClearAll handles DELETE /api/v1/customers/clear-all
// @Summary Delete all customers
// @Description Delete every customer together with all invoices and invoice lines
// @Tags customers
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "All customers deleted"
// @Security BearerAuth
// @Router /customers/clear-all [delete]
func (h *CustomerHandler) ClearAll(c *gin.Context) {
	if err := h.customerService.ClearAll(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "all customers deleted"})
}
