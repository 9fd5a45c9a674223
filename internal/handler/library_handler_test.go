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

func libraryRouter(svc *mocks.MockLibraryService) *gin.Engine {
	h := handler.NewLibraryHandler(svc)
	r := gin.New()
	r.GET("/library", h.List)
	r.POST("/library", h.Save)
	r.POST("/library/:id/load", h.Load)
	r.DELETE("/library/:id", h.Delete)
	return r
}

func TestLibrarySaveAsNew(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	input := service.SaveDocumentInput{Name: "Deck repair", AsNew: true}
	svc.On("Save", mock.Anything, input).Return("fresh-id", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/library", strings.NewReader(`{"name":"Deck repair","asNew":true}`))
	req.Header.Set("Content-Type", "application/json")
	libraryRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "fresh-id")
}

func TestLibraryLoad_NotFound(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	svc.On("Load", mock.Anything, "gone").Return(domain.Document{}, domain.ErrNotFound)

	w := httptest.NewRecorder()
	libraryRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/library/gone/load", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLibraryDelete(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	svc.On("Delete", mock.Anything, "doc-1").Return(nil)

	w := httptest.NewRecorder()
	libraryRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/library/doc-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPreferencesFonts(t *testing.T) {
	svc := new(mocks.MockPreferencesService)
	svc.On("Fonts", mock.Anything).Return(domain.AvailableFonts)

	h := handler.NewPreferencesHandler(svc)
	r := gin.New()
	r.GET("/preferences/fonts", h.Fonts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preferences/fonts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dancing Script")
}

func TestPreferencesApplyBranding_NotFound(t *testing.T) {
	svc := new(mocks.MockPreferencesService)
	svc.On("ApplyBranding", mock.Anything, "gone").Return(domain.Document{}, domain.ErrNotFound)

	h := handler.NewPreferencesHandler(svc)
	r := gin.New()
	r.POST("/preferences/branding/:id/apply", h.ApplyBranding)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/preferences/branding/gone/apply", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
