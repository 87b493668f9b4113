package handler

import (
	partnershipapp "github.com/faktulove/backend/internal/application/partnership"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnershipHandler handles partnership endpoints
type PartnershipHandler struct {
	BaseHandler
	partnershipService *partnershipapp.PartnershipService
}

// NewPartnershipHandler creates a new PartnershipHandler
func NewPartnershipHandler(partnershipService *partnershipapp.PartnershipService) *PartnershipHandler {
	return &PartnershipHandler{partnershipService: partnershipService}
}

// Create links the tenant's company with a partner company by NIP
func (h *PartnershipHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnershipapp.CreatePartnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnershipService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns the tenant's partnerships
func (h *PartnershipHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.partnershipService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *PartnershipHandler) setActive(c *gin.Context, active bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid partnership ID")
		return
	}

	resp, err := h.partnershipService.SetActive(c.Request.Context(), tenantID, id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate re-enables a suspended partnership
func (h *PartnershipHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate suspends a partnership
func (h *PartnershipHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *PartnershipHandler) setAutoPosting(c *gin.Context, enabled bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid partnership ID")
		return
	}

	resp, err := h.partnershipService.SetAutoPosting(c.Request.Context(), tenantID, id, enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// EnableAutoPosting turns on invoice mirroring for the partnership
func (h *PartnershipHandler) EnableAutoPosting(c *gin.Context) {
	h.setAutoPosting(c, true)
}

// DisableAutoPosting turns off invoice mirroring for the partnership
func (h *PartnershipHandler) DisableAutoPosting(c *gin.Context) {
	h.setAutoPosting(c, false)
}

// Delete removes a partnership
func (h *PartnershipHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partnership ID")
		return
	}

	if err := h.partnershipService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers partnership routes
func (h *PartnershipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partnerships := rg.Group("/partnerships")
	partnerships.POST("", h.Create)
	partnerships.GET("", h.List)
	partnerships.POST("/:id/activate", h.Activate)
	partnerships.POST("/:id/deactivate", h.Deactivate)
	partnerships.POST("/:id/auto-posting/enable", h.EnableAutoPosting)
	partnerships.POST("/:id/auto-posting/disable", h.DisableAutoPosting)
	partnerships.DELETE("/:id", h.Delete)
}
