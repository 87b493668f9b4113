package handler

import (
	contractorapp "github.com/faktulove/backend/internal/application/contractor"
	"github.com/gin-gonic/gin"
)

// ContractorHandler handles counterparty endpoints
type ContractorHandler struct {
	BaseHandler
	contractorService *contractorapp.ContractorService
}

// NewContractorHandler creates a new ContractorHandler
func NewContractorHandler(contractorService *contractorapp.ContractorService) *ContractorHandler {
	return &ContractorHandler{contractorService: contractorService}
}

// Create adds a contractor
func (h *ContractorHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contractorapp.CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contractorService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single contractor
func (h *ContractorHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID")
		return
	}

	resp, err := h.contractorService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns contractors with pagination
func (h *ContractorHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter contractorapp.ContractorListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.contractorService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update changes contractor details
func (h *ContractorHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID")
		return
	}

	var req contractorapp.UpdateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contractorService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a contractor
func (h *ContractorHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID")
		return
	}

	if err := h.contractorService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers contractor routes
func (h *ContractorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contractors := rg.Group("/contractors")
	contractors.POST("", h.Create)
	contractors.GET("", h.List)
	contractors.GET("/:id", h.GetByID)
	contractors.PUT("/:id", h.Update)
	contractors.DELETE("/:id", h.Delete)
}
