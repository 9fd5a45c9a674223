package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/service"
)

// ExportHandler handles the PDF export endpoint.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// PDF handles GET /api/v1/export/pdf
// On an engine failure the error payload carries fallback "print".
func (h *ExportHandler) PDF(c *gin.Context) {
	export, err := h.exportService.RenderPDF(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", export.Data)
}
