package router

import (
	"github.com/gin-gonic/gin"

	"proinvoice/internal/handler"
	"proinvoice/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	documentH *handler.DocumentHandler,
	preferencesH *handler.PreferencesHandler,
	profileH *handler.ProfileHandler,
	libraryH *handler.LibraryHandler,
	backupH *handler.BackupHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Active document
	document := v1.Group("/document")
	document.GET("", documentH.Get)
	document.PATCH("", documentH.Patch)
	document.GET("/totals", documentH.Totals)
	document.POST("/reset", documentH.Reset)
	document.POST("/items", documentH.AddItem)
	document.PATCH("/items/:id", documentH.UpdateItem)
	document.DELETE("/items/:id", documentH.RemoveItem)
	document.POST("/items/:id/duplicate", documentH.DuplicateItem)

	// Preferences
	preferences := v1.Group("/preferences")
	preferences.GET("", preferencesH.Get)
	preferences.PATCH("", preferencesH.Patch)
	preferences.GET("/fonts", preferencesH.Fonts)
	preferences.POST("/branding/:id/apply", preferencesH.ApplyBranding)

	// Profiles
	profiles := v1.Group("/profiles")
	profiles.GET("/adjustments/:kind", profileH.ListAdjustments)
	profiles.POST("/adjustments/:kind", profileH.CreateAdjustment)
	profiles.PATCH("/adjustments/:kind/:id", profileH.UpdateAdjustment)
	profiles.DELETE("/adjustments/:kind/:id", profileH.DeleteAdjustment)

	profiles.GET("/materials", profileH.ListMaterials)
	profiles.POST("/materials", profileH.CreateMaterial)
	profiles.POST("/materials/import", profileH.ImportMaterials)
	profiles.PATCH("/materials/:id", profileH.RenameMaterial)
	profiles.DELETE("/materials/:id", profileH.DeleteMaterial)
	profiles.GET("/materials/:id/export", profileH.ExportMaterials)
	profiles.POST("/materials/:id/entries", profileH.AddMaterialEntry)
	profiles.PATCH("/materials/:id/entries/:entryId", profileH.UpdateMaterialEntry)
	profiles.DELETE("/materials/:id/entries/:entryId", profileH.DeleteMaterialEntry)

	profiles.GET("/branding", profileH.ListBranding)
	profiles.POST("/branding", profileH.CreateBranding)
	profiles.PATCH("/branding/:id", profileH.UpdateBranding)
	profiles.DELETE("/branding/:id", profileH.DeleteBranding)

	// Saved-document library
	library := v1.Group("/library")
	library.GET("", libraryH.List)
	library.POST("", libraryH.Save)
	library.POST("/:id/load", libraryH.Load)
	library.DELETE("/:id", libraryH.Delete)

	// Backup and restore
	backupGroup := v1.Group("/backup")
	backupGroup.GET("/export", backupH.Export)
	backupGroup.POST("/restore", backupH.Restore)

	// Export
	export := v1.Group("/export")
	export.GET("/pdf", exportH.PDF)

	// Admin
	admin := v1.Group("/admin")
	admin.POST("/reset", backupH.ResetAll)

	return r
}
