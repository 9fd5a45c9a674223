package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"proinvoice/internal/domain"
	"proinvoice/internal/profile"
	"proinvoice/internal/service"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) ListAdjustments(ctx context.Context, kind domain.ProfileKind) ([]domain.AdjustmentProfile, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdjustmentProfile), args.Error(1)
}

func (m *MockProfileService) CreateAdjustment(ctx context.Context, kind domain.ProfileKind, input service.CreateAdjustmentInput) (string, error) {
	args := m.Called(ctx, kind, input)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) UpdateAdjustment(ctx context.Context, kind domain.ProfileKind, id string, patch profile.AdjustmentPatch) error {
	args := m.Called(ctx, kind, id, patch)
	return args.Error(0)
}

func (m *MockProfileService) DeleteAdjustment(ctx context.Context, kind domain.ProfileKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockProfileService) ListMaterialProfiles(ctx context.Context) []domain.MaterialProfile {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MaterialProfile)
}

func (m *MockProfileService) CreateMaterialProfile(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) RenameMaterialProfile(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockProfileService) DeleteMaterialProfile(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileService) AddMaterialEntry(ctx context.Context, profileID string) (string, error) {
	args := m.Called(ctx, profileID)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) UpdateMaterialEntry(ctx context.Context, profileID, entryID string, patch profile.MaterialEntryPatch) {
	m.Called(ctx, profileID, entryID, patch)
}

func (m *MockProfileService) DeleteMaterialEntry(ctx context.Context, profileID, entryID string) {
	m.Called(ctx, profileID, entryID)
}

func (m *MockProfileService) ImportMaterials(ctx context.Context, raw []byte, fallbackName string) (domain.MaterialProfile, error) {
	args := m.Called(ctx, raw, fallbackName)
	return args.Get(0).(domain.MaterialProfile), args.Error(1)
}

func (m *MockProfileService) ImportMaterialsXLSX(ctx context.Context, r io.Reader, name string) (domain.MaterialProfile, error) {
	args := m.Called(ctx, r, name)
	return args.Get(0).(domain.MaterialProfile), args.Error(1)
}

func (m *MockProfileService) ExportMaterials(ctx context.Context, profileID, format string) (*service.MaterialExport, error) {
	args := m.Called(ctx, profileID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MaterialExport), args.Error(1)
}

func (m *MockProfileService) ListBrandingProfiles(ctx context.Context) []domain.BrandingProfile {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BrandingProfile)
}

func (m *MockProfileService) CreateBrandingProfile(ctx context.Context, p domain.BrandingProfile) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) UpdateBrandingProfile(ctx context.Context, id string, patch profile.BrandingPatch) {
	m.Called(ctx, id, patch)
}

func (m *MockProfileService) DeleteBrandingProfile(ctx context.Context, id string) {
	m.Called(ctx, id)
}
