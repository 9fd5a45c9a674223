package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/service"
	"proinvoice/internal/session"
)

// PreferencesHandler handles the preference record endpoints.
type PreferencesHandler struct {
	preferencesService service.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(preferencesService service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// Get handles GET /api/v1/preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	RespondOK(c, h.preferencesService.Get(c.Request.Context()))
}

// Patch handles PATCH /api/v1/preferences
func (h *PreferencesHandler) Patch(c *gin.Context) {
	var patch session.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	RespondOK(c, h.preferencesService.Update(c.Request.Context(), patch))
}

// ApplyBranding handles POST /api/v1/preferences/branding/:id/apply
func (h *PreferencesHandler) ApplyBranding(c *gin.Context) {
	doc, err := h.preferencesService.ApplyBranding(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Fonts handles GET /api/v1/preferences/fonts
func (h *PreferencesHandler) Fonts(c *gin.Context) {
	RespondOK(c, h.preferencesService.Fonts(c.Request.Context()))
}
