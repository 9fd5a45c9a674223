package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"proinvoice/internal/domain"
	"proinvoice/internal/handler"
	"proinvoice/internal/service"
	"proinvoice/mocks"
)

func TestExportPDF_Success(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("RenderPDF", mock.Anything).Return(&service.PDFExport{
		FileName: "Invoice_INV-001.pdf",
		Data:     []byte("%PDF-1.4 fake"),
	}, nil)

	h := handler.NewExportHandler(svc)
	r := gin.New()
	r.GET("/export/pdf", h.PDF)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export/pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Invoice_INV-001.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportPDF_EngineFailureAdvertisesPrintFallback(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("RenderPDF", mock.Anything).Return(nil, domain.ErrPDFEngine)

	h := handler.NewExportHandler(svc)
	r := gin.New()
	r.GET("/export/pdf", h.PDF)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export/pdf", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PDF_ENGINE_FAILED", resp.Error.Code)
	assert.Equal(t, "print", resp.Error.Fallback)
}

func TestBackupRestore_BadFormat(t *testing.T) {
	svc := new(mocks.MockBackupService)
	svc.On("Restore", mock.Anything, mock.Anything).Return(domain.ErrInvalidBackupFormat)

	h := handler.NewBackupHandler(svc)
	r := gin.New()
	r.POST("/backup/restore", h.Restore)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/backup/restore", strings.NewReader("not json"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_BACKUP_FORMAT", resp.Error.Code)
}

func TestAdminReset_RequiresConfirm(t *testing.T) {
	svc := new(mocks.MockBackupService)
	svc.On("ResetAll", mock.Anything, false).Return(domain.ErrConfirmationRequired)

	h := handler.NewBackupHandler(svc)
	r := gin.New()
	r.POST("/admin/reset", h.ResetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/reset", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFIRMATION_REQUIRED", resp.Error.Code)
}

func TestAdminReset_Confirmed(t *testing.T) {
	svc := new(mocks.MockBackupService)
	svc.On("ResetAll", mock.Anything, true).Return(nil)

	h := handler.NewBackupHandler(svc)
	r := gin.New()
	r.POST("/admin/reset", h.ResetAll)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/reset", strings.NewReader(`{"confirm":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
