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

func profileRouter(svc *mocks.MockProfileService) *gin.Engine {
	h := handler.NewProfileHandler(svc)
	r := gin.New()
	r.GET("/profiles/adjustments/:kind", h.ListAdjustments)
	r.POST("/profiles/adjustments/:kind", h.CreateAdjustment)
	r.DELETE("/profiles/materials/:id", h.DeleteMaterial)
	r.GET("/profiles/materials/:id/export", h.ExportMaterials)
	r.POST("/profiles/materials/import", h.ImportMaterials)
	return r
}

func TestListAdjustments_InvalidKind(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("ListAdjustments", mock.Anything, domain.ProfileKind("bogus")).Return(nil, domain.ErrInvalidProfileKind)

	w := httptest.NewRecorder()
	profileRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profiles/adjustments/bogus", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PROFILE_KIND", resp.Error.Code)
}

func TestCreateAdjustment(t *testing.T) {
	svc := new(mocks.MockProfileService)
	input := service.CreateAdjustmentInput{Name: "Rush", Kind: domain.AdjustPercent, Amount: 50}
	svc.On("CreateAdjustment", mock.Anything, domain.ProfileMarkup, input).Return("new-id", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profiles/adjustments/markup",
		strings.NewReader(`{"name":"Rush","type":"percent","value":50}`))
	req.Header.Set("Content-Type", "application/json")
	profileRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "new-id")
}

func TestDeleteMaterial_LastProfile(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("DeleteMaterialProfile", mock.Anything, "only").Return(domain.ErrLastMaterialProfile)

	w := httptest.NewRecorder()
	profileRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/profiles/materials/only", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "LAST_MATERIAL_PROFILE", resp.Error.Code)
}

func TestExportMaterials_CSV(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("ExportMaterials", mock.Anything, "p1", "csv").Return(&service.MaterialExport{
		FileName:    "Materials_Default_List.csv",
		ContentType: "text/csv",
		Data:        []byte("Item,Price\n"),
	}, nil)

	w := httptest.NewRecorder()
	profileRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profiles/materials/p1/export?format=csv", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Materials_Default_List.csv")
	assert.Contains(t, w.Body.String(), "Item,Price")
}

func TestImportMaterials_EmptyList(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("ImportMaterials", mock.Anything, mock.Anything, "").Return(domain.MaterialProfile{}, domain.ErrEmptyMaterialImport)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profiles/materials/import", strings.NewReader(`[]`))
	profileRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_MATERIAL_IMPORT", resp.Error.Code)
}
