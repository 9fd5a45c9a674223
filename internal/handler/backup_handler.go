package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/service"
)

// BackupHandler handles backup, restore, and factory reset endpoints.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export handles GET /api/v1/backup/export
func (h *BackupHandler) Export(c *gin.Context) {
	fileName, data, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Restore handles POST /api/v1/backup/restore
func (h *BackupHandler) Restore(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable request body")
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), raw); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"restored": true})
}

// ResetAll handles POST /api/v1/admin/reset
// The body must carry {"confirm": true}; anything else is rejected.
func (h *BackupHandler) ResetAll(c *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	if err := h.backupService.ResetAll(c.Request.Context(), req.Confirm); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"reset": true})
}
