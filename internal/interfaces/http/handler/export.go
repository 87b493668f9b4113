package handler

import (
	"fmt"
	"net/http"
	"time"

	exportapp "github.com/faktulove/backend/internal/application/export"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV     = "text/csv; charset=utf-8"
	contentTypeCSV1250 = "text/csv; charset=windows-1250"
	contentTypeZip     = "application/zip"
)

// ExportHandler handles register exports, backups and GDPR requests
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.ExportService
	backupService *exportapp.BackupService
	gdprService   *exportapp.GDPRService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(
	exportService *exportapp.ExportService,
	backupService *exportapp.BackupService,
	gdprService *exportapp.GDPRService,
) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		backupService: backupService,
		gdprService:   gdprService,
	}
}

// parseRange reads the from/to query parameters. Missing values default to
// the current month.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
		}
		// include the whole end day
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, nil
}

// RegisterXLSX streams the invoice register as a spreadsheet
func (h *ExportHandler) RegisterXLSX(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.exportService.InvoiceRegisterXLSX(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("rejestr_faktur_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// RegisterCSV streams the invoice register as semicolon-separated CSV
func (h *ExportHandler) RegisterCSV(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var data []byte
	contentType := contentTypeCSV
	switch c.Query("encoding") {
	case "", "utf-8":
		data, err = h.exportService.InvoiceRegisterCSV(c.Request.Context(), tenantID, from, to)
	case "cp1250", "windows-1250":
		data, err = h.exportService.InvoiceRegisterCSVWindows1250(c.Request.Context(), tenantID, from, to)
		contentType = contentTypeCSV1250
	default:
		h.BadRequest(c, "Unsupported encoding; use utf-8 or cp1250")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("rejestr_faktur_%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, data)
}

// Backup streams a zip archive with the tenant's data as JSON
func (h *ExportHandler) Backup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	data, err := h.backupService.CreateBackup(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("faktulove_backup_%s.zip", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentTypeZip, data)
}

// GDPRExport returns everything stored about a contractor
func (h *ExportHandler) GDPRExport(c *gin.Context) {
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

	export, err := h.gdprService.ExportContractorData(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, export)
}

// GDPRAnonymizeContractor scrubs a contractor's personal fields in place
func (h *ExportHandler) GDPRAnonymizeContractor(c *gin.Context) {
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

	if err := h.gdprService.AnonymizeContractor(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GDPRAnonymizeUser scrubs a user account's personal fields
func (h *ExportHandler) GDPRAnonymizeUser(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.gdprService.AnonymizeUser(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers export and GDPR routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	exports.GET("/invoice-register.xlsx", h.RegisterXLSX)
	exports.GET("/invoice-register.csv", h.RegisterCSV)
	exports.GET("/backup.zip", h.Backup)

	gdpr := rg.Group("/gdpr")
	gdpr.GET("/contractors/:id/export", h.GDPRExport)
	gdpr.POST("/contractors/:id/anonymize", h.GDPRAnonymizeContractor)
	gdpr.POST("/users/:id/anonymize", h.GDPRAnonymizeUser)
}
