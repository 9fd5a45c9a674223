package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/domain"
	"proinvoice/internal/profile"
	"proinvoice/internal/service"
)

// ProfileHandler handles profile management endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ListAdjustments handles GET /api/v1/profiles/adjustments/:kind
func (h *ProfileHandler) ListAdjustments(c *gin.Context) {
	profiles, err := h.profileService.ListAdjustments(c.Request.Context(), domain.ProfileKind(c.Param("kind")))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profiles)
}

// CreateAdjustment handles POST /api/v1/profiles/adjustments/:kind
func (h *ProfileHandler) CreateAdjustment(c *gin.Context) {
	var input service.CreateAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.profileService.CreateAdjustment(c.Request.Context(), domain.ProfileKind(c.Param("kind")), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"id": id})
}

// UpdateAdjustment handles PATCH /api/v1/profiles/adjustments/:kind/:id
func (h *ProfileHandler) UpdateAdjustment(c *gin.Context) {
	var patch profile.AdjustmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.profileService.UpdateAdjustment(c.Request.Context(), domain.ProfileKind(c.Param("kind")), c.Param("id"), patch); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"updated": true})
}

// DeleteAdjustment handles DELETE /api/v1/profiles/adjustments/:kind/:id
func (h *ProfileHandler) DeleteAdjustment(c *gin.Context) {
	if err := h.profileService.DeleteAdjustment(c.Request.Context(), domain.ProfileKind(c.Param("kind")), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// nameRequest is the body for create and rename operations.
type nameRequest struct {
	Name string `json:"name"`
}

// ListMaterials handles GET /api/v1/profiles/materials
func (h *ProfileHandler) ListMaterials(c *gin.Context) {
	RespondOK(c, h.profileService.ListMaterialProfiles(c.Request.Context()))
}

// CreateMaterial handles POST /api/v1/profiles/materials
func (h *ProfileHandler) CreateMaterial(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.profileService.CreateMaterialProfile(c.Request.Context(), req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"id": id})
}

// RenameMaterial handles PATCH /api/v1/profiles/materials/:id
func (h *ProfileHandler) RenameMaterial(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.profileService.RenameMaterialProfile(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"updated": true})
}

// DeleteMaterial handles DELETE /api/v1/profiles/materials/:id
func (h *ProfileHandler) DeleteMaterial(c *gin.Context) {
	if err := h.profileService.DeleteMaterialProfile(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// AddMaterialEntry handles POST /api/v1/profiles/materials/:id/entries
func (h *ProfileHandler) AddMaterialEntry(c *gin.Context) {
	entryID, err := h.profileService.AddMaterialEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"id": entryID})
}

// UpdateMaterialEntry handles PATCH /api/v1/profiles/materials/:id/entries/:entryId
func (h *ProfileHandler) UpdateMaterialEntry(c *gin.Context) {
	var patch profile.MaterialEntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.profileService.UpdateMaterialEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), patch)
	RespondOK(c, gin.H{"updated": true})
}

// DeleteMaterialEntry handles DELETE /api/v1/profiles/materials/:id/entries/:entryId
func (h *ProfileHandler) DeleteMaterialEntry(c *gin.Context) {
	h.profileService.DeleteMaterialEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"))
	RespondOK(c, gin.H{"deleted": true})
}

// ImportMaterials handles POST /api/v1/profiles/materials/import
// The body is the uploaded catalog; json by default, xlsx with ?format=xlsx.
// A bare item array needs ?name= for the new profile's name.
func (h *ProfileHandler) ImportMaterials(c *gin.Context) {
	name := c.Query("name")

	if c.Query("format") == "xlsx" {
		p, err := h.profileService.ImportMaterialsXLSX(c.Request.Context(), c.Request.Body, name)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondCreated(c, p)
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable request body")
		return
	}

	p, err := h.profileService.ImportMaterials(c.Request.Context(), raw, name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, p)
}

// ExportMaterials handles GET /api/v1/profiles/materials/:id/export
// ?format= selects json (default), xlsx, or csv.
func (h *ProfileHandler) ExportMaterials(c *gin.Context) {
	export, err := h.profileService.ExportMaterials(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// ListBranding handles GET /api/v1/profiles/branding
func (h *ProfileHandler) ListBranding(c *gin.Context) {
	RespondOK(c, h.profileService.ListBrandingProfiles(c.Request.Context()))
}

// CreateBranding handles POST /api/v1/profiles/branding
func (h *ProfileHandler) CreateBranding(c *gin.Context) {
	var p domain.BrandingProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.profileService.CreateBrandingProfile(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"id": id})
}

// UpdateBranding handles PATCH /api/v1/profiles/branding/:id
func (h *ProfileHandler) UpdateBranding(c *gin.Context) {
	var patch profile.BrandingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.profileService.UpdateBrandingProfile(c.Request.Context(), c.Param("id"), patch)
	RespondOK(c, gin.H{"updated": true})
}

// DeleteBranding handles DELETE /api/v1/profiles/branding/:id
func (h *ProfileHandler) DeleteBranding(c *gin.Context) {
	h.profileService.DeleteBrandingProfile(c.Request.Context(), c.Param("id"))
	RespondOK(c, gin.H{"deleted": true})
}
