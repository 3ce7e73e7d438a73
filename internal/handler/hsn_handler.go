package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// HSNHandler handles HSN master data endpoints.
type HSNHandler struct {
	hsnService service.HSNService
}

// NewHSNHandler creates a new HSNHandler.
func NewHSNHandler(hsnService service.HSNService) *HSNHandler {
	return &HSNHandler{hsnService: hsnService}
}

// List handles GET /api/v1/hsn
// @Summary List HSN codes
// @Tags hsn
// @Produce json
// @Success 200 {object} Response{data=[]domain.HSN} "HSN codes"
// @Security BearerAuth
// @Router /hsn [get]
func (h *HSNHandler) List(c *gin.Context) {
	codes, err := h.hsnService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, codes)
}

// GetByCode handles GET /api/v1/hsn/code/:code
// @Summary Get an HSN code
// @Tags hsn
// @Produce json
// @Param code path string true "HSN code"
// @Success 200 {object} Response{data=domain.HSN} "HSN code"
// @Failure 404 {object} ErrorResponseBody "HSN code not found"
// @Security BearerAuth
// @Router /hsn/code/{code} [get]
func (h *HSNHandler) GetByCode(c *gin.Context) {
	hsn, err := h.hsnService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, hsn)
}

// Create handles POST /api/v1/hsn
// @Summary Register an HSN code
// @Tags hsn
// @Accept json
// @Produce json
// @Param request body CreateHSNRequest true "HSN code and GST rate"
// @Success 201 {object} Response{data=domain.HSN} "HSN code created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "HSN code already exists"
// @Security BearerAuth
// @Router /hsn [post]
func (h *HSNHandler) Create(c *gin.Context) {
	var input service.CreateHSNInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	hsn, err := h.hsnService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, hsn)
}

// Delete handles DELETE /api/v1/hsn/:id
// @Summary Delete an HSN code
// @Tags hsn
// @Produce json
// @Param id path string true "HSN ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "HSN code deleted"
// @Failure 404 {object} ErrorResponseBody "HSN code not found"
// @Security BearerAuth
// @Router /hsn/{id} [delete]
func (h *HSNHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "hsn")
	if !ok {
		return
	}

	if err := h.hsnService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "hsn code deleted"})
}
