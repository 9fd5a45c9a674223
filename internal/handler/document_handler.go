package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/service"
	"proinvoice/internal/session"
)

// DocumentHandler handles the active document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Get handles GET /api/v1/document
func (h *DocumentHandler) Get(c *gin.Context) {
	RespondOK(c, h.documentService.Get(c.Request.Context()))
}

// Patch handles PATCH /api/v1/document
func (h *DocumentHandler) Patch(c *gin.Context) {
	var patch session.DocumentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.documentService.Patch(c.Request.Context(), patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Totals handles GET /api/v1/document/totals
func (h *DocumentHandler) Totals(c *gin.Context) {
	RespondOK(c, h.documentService.Totals(c.Request.Context()))
}

// Reset handles POST /api/v1/document/reset
func (h *DocumentHandler) Reset(c *gin.Context) {
	RespondOK(c, h.documentService.Reset(c.Request.Context()))
}

// AddItem handles POST /api/v1/document/items
func (h *DocumentHandler) AddItem(c *gin.Context) {
	var input service.AddItemInput
	// An empty body means a blank line item.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	doc, err := h.documentService.AddItem(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// DuplicateItem handles POST /api/v1/document/items/:id/duplicate
func (h *DocumentHandler) DuplicateItem(c *gin.Context) {
	doc, err := h.documentService.DuplicateItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// UpdateItem handles PATCH /api/v1/document/items/:id
func (h *DocumentHandler) UpdateItem(c *gin.Context) {
	var patch session.LineItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	RespondOK(c, h.documentService.UpdateItem(c.Request.Context(), c.Param("id"), patch))
}

// RemoveItem handles DELETE /api/v1/document/items/:id
func (h *DocumentHandler) RemoveItem(c *gin.Context) {
	RespondOK(c, h.documentService.RemoveItem(c.Request.Context(), c.Param("id")))
}
