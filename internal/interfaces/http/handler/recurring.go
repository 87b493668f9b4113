package handler

import (
	invoicingapp "github.com/faktulove/backend/internal/application/invoicing"
	"github.com/gin-gonic/gin"
)

// RecurringHandler handles recurring invoice schedule endpoints
type RecurringHandler struct {
	BaseHandler
	recurringService *invoicingapp.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *invoicingapp.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// Create schedules periodic generation from a template invoice
func (h *RecurringHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req invoicingapp.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.recurringService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns the tenant's schedules
func (h *RecurringHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.recurringService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate stops a schedule from generating further invoices
func (h *RecurringHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	resp, err := h.recurringService.Deactivate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a schedule
func (h *RecurringHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	if err := h.recurringService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers recurring invoice routes
func (h *RecurringHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recurring := rg.Group("/recurring-invoices")
	recurring.POST("", h.Create)
	recurring.GET("", h.List)
	recurring.POST("/:id/deactivate", h.Deactivate)
	recurring.DELETE("/:id", h.Delete)
}
