package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"proinvoice/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. Fallback names the degraded
// path the client should take when the server cannot complete the operation,
// currently only "print" for failed PDF renders.
type APIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Fallback string `json:"fallback,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInvalidDocumentKind):
		return http.StatusBadRequest, "INVALID_DOCUMENT_KIND", "invalid document kind; allowed: invoice, receipt, quote, email"
	case errors.Is(err, domain.ErrInvalidProfileKind):
		return http.StatusBadRequest, "INVALID_PROFILE_KIND", "invalid profile kind; allowed: markup, deposit, material, branding"
	case errors.Is(err, domain.ErrProfileNameRequired):
		return http.StatusBadRequest, "PROFILE_NAME_REQUIRED", "a profile name is required"
	case errors.Is(err, domain.ErrLastMaterialProfile):
		return http.StatusConflict, "LAST_MATERIAL_PROFILE", "the last material profile cannot be deleted"
	case errors.Is(err, domain.ErrInvalidBackupFormat):
		return http.StatusBadRequest, "INVALID_BACKUP_FORMAT", "backup file is not a recognized format"
	case errors.Is(err, domain.ErrInvalidMaterialImport):
		return http.StatusBadRequest, "INVALID_MATERIAL_IMPORT", "material import is not a recognized format"
	case errors.Is(err, domain.ErrEmptyMaterialImport):
		return http.StatusBadRequest, "EMPTY_MATERIAL_IMPORT", "material import contains no items"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusConflict, "CONFIRMATION_REQUIRED", "destructive operation requires the confirm flag"
	case errors.Is(err, domain.ErrPDFEngine):
		return http.StatusBadGateway, "PDF_ENGINE_FAILED", "pdf generation failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// A failed PDF render additionally advertises the browser print fallback.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	if errors.Is(err, domain.ErrPDFEngine) {
		c.JSON(status, APIResponse{
			Success: false,
			Error:   &APIError{Code: code, Message: msg, Fallback: "print"},
		})
		return
	}
	RespondError(c, status, code, msg)
}
