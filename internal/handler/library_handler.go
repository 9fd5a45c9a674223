package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/service"
)

// LibraryHandler handles the saved-document library endpoints.
type LibraryHandler struct {
	libraryService service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// List handles GET /api/v1/library
func (h *LibraryHandler) List(c *gin.Context) {
	RespondOK(c, h.libraryService.List(c.Request.Context()))
}

// Save handles POST /api/v1/library
func (h *LibraryHandler) Save(c *gin.Context) {
	var input service.SaveDocumentInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	id, err := h.libraryService.Save(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"id": id})
}

// Load handles POST /api/v1/library/:id/load
func (h *LibraryHandler) Load(c *gin.Context) {
	doc, err := h.libraryService.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/library/:id
func (h *LibraryHandler) Delete(c *gin.Context) {
	if err := h.libraryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
