package service

import (
	"bytes"
	"context"
	"io"
	"strings"

	"proinvoice/internal/domain"
	"proinvoice/internal/materialio"
	"proinvoice/internal/profile"
)

// CreateAdjustmentInput is the DTO for creating a markup or deposit profile.
type CreateAdjustmentInput struct {
	Name   string                `json:"name"`
	Kind   domain.AdjustmentKind `json:"type"`
	Amount float64               `json:"value"`
}

// MaterialExport is a rendered material catalog ready for download.
type MaterialExport struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ProfileService defines the profile store contract: adjustment, material,
// and branding profile management plus material catalog import and export.
type ProfileService interface {
	ListAdjustments(ctx context.Context, kind domain.ProfileKind) ([]domain.AdjustmentProfile, error)
	CreateAdjustment(ctx context.Context, kind domain.ProfileKind, input CreateAdjustmentInput) (string, error)
	UpdateAdjustment(ctx context.Context, kind domain.ProfileKind, id string, patch profile.AdjustmentPatch) error
	DeleteAdjustment(ctx context.Context, kind domain.ProfileKind, id string) error

	ListMaterialProfiles(ctx context.Context) []domain.MaterialProfile
	CreateMaterialProfile(ctx context.Context, name string) (string, error)
	RenameMaterialProfile(ctx context.Context, id, name string) error
	DeleteMaterialProfile(ctx context.Context, id string) error
	AddMaterialEntry(ctx context.Context, profileID string) (string, error)
	UpdateMaterialEntry(ctx context.Context, profileID, entryID string, patch profile.MaterialEntryPatch)
	DeleteMaterialEntry(ctx context.Context, profileID, entryID string)
	ImportMaterials(ctx context.Context, raw []byte, fallbackName string) (domain.MaterialProfile, error)
	ImportMaterialsXLSX(ctx context.Context, r io.Reader, name string) (domain.MaterialProfile, error)
	ExportMaterials(ctx context.Context, profileID, format string) (*MaterialExport, error)

	ListBrandingProfiles(ctx context.Context) []domain.BrandingProfile
	CreateBrandingProfile(ctx context.Context, p domain.BrandingProfile) (string, error)
	UpdateBrandingProfile(ctx context.Context, id string, patch profile.BrandingPatch)
	DeleteBrandingProfile(ctx context.Context, id string)
}

type profileService struct {
	profiles *profile.Store
}

// NewProfileService creates a ProfileService over the live profile store.
func NewProfileService(profiles *profile.Store) ProfileService {
	return &profileService{profiles: profiles}
}

func adjustmentKindValid(kind domain.ProfileKind) bool {
	return kind == domain.ProfileMarkup || kind == domain.ProfileDeposit
}

func (s *profileService) ListAdjustments(ctx context.Context, kind domain.ProfileKind) ([]domain.AdjustmentProfile, error) {
	if !adjustmentKindValid(kind) {
		return nil, domain.ErrInvalidProfileKind
	}
	return s.profiles.ListAdjustments(kind), nil
}

func (s *profileService) CreateAdjustment(ctx context.Context, kind domain.ProfileKind, input CreateAdjustmentInput) (string, error) {
	if !adjustmentKindValid(kind) {
		return "", domain.ErrInvalidProfileKind
	}
	if strings.TrimSpace(input.Name) == "" {
		return "", domain.ErrProfileNameRequired
	}
	adjKind := input.Kind
	if adjKind != domain.AdjustFixed {
		adjKind = domain.AdjustPercent
	}
	return s.profiles.CreateAdjustment(ctx, kind, input.Name, adjKind, input.Amount), nil
}

func (s *profileService) UpdateAdjustment(ctx context.Context, kind domain.ProfileKind, id string, patch profile.AdjustmentPatch) error {
	if !adjustmentKindValid(kind) {
		return domain.ErrInvalidProfileKind
	}
	s.profiles.UpdateAdjustment(ctx, kind, id, patch)
	return nil
}

// DeleteAdjustment removes a profile. Documents still selecting the id keep
// the dangling reference; totals simply stop applying the adjustment.
func (s *profileService) DeleteAdjustment(ctx context.Context, kind domain.ProfileKind, id string) error {
	if !adjustmentKindValid(kind) {
		return domain.ErrInvalidProfileKind
	}
	s.profiles.DeleteAdjustment(ctx, kind, id)
	return nil
}

func (s *profileService) ListMaterialProfiles(ctx context.Context) []domain.MaterialProfile {
	return s.profiles.ListMaterialProfiles()
}

func (s *profileService) CreateMaterialProfile(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrProfileNameRequired
	}
	return s.profiles.CreateMaterialProfile(ctx, name), nil
}

func (s *profileService) RenameMaterialProfile(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrProfileNameRequired
	}
	s.profiles.RenameMaterialProfile(ctx, id, name)
	return nil
}

func (s *profileService) DeleteMaterialProfile(ctx context.Context, id string) error {
	return s.profiles.DeleteMaterialProfile(ctx, id)
}

func (s *profileService) AddMaterialEntry(ctx context.Context, profileID string) (string, error) {
	return s.profiles.AddMaterialEntry(ctx, profileID)
}

func (s *profileService) UpdateMaterialEntry(ctx context.Context, profileID, entryID string, patch profile.MaterialEntryPatch) {
	s.profiles.UpdateMaterialEntry(ctx, profileID, entryID, patch)
}

func (s *profileService) DeleteMaterialEntry(ctx context.Context, profileID, entryID string) {
	s.profiles.DeleteMaterialEntry(ctx, profileID, entryID)
}

// ImportMaterials parses an uploaded catalog and registers it as a new
// material profile.
func (s *profileService) ImportMaterials(ctx context.Context, raw []byte, fallbackName string) (domain.MaterialProfile, error) {
	p, err := materialio.ParseImport(raw, fallbackName)
	if err != nil {
		return domain.MaterialProfile{}, err
	}
	s.profiles.AddMaterialProfile(ctx, p)
	return p, nil
}

func (s *profileService) ImportMaterialsXLSX(ctx context.Context, r io.Reader, name string) (domain.MaterialProfile, error) {
	p, err := materialio.ReadXLSX(r, name)
	if err != nil {
		return domain.MaterialProfile{}, err
	}
	s.profiles.AddMaterialProfile(ctx, p)
	return p, nil
}

// ExportMaterials renders one material profile as json, xlsx, or csv.
func (s *profileService) ExportMaterials(ctx context.Context, profileID, format string) (*MaterialExport, error) {
	p, err := s.profiles.MaterialProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	switch format {
	case "xlsx":
		data, err := materialio.WriteXLSX(p)
		if err != nil {
			return nil, err
		}
		return &MaterialExport{
			FileName:    materialio.Filename(p, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case "csv":
		var buf bytes.Buffer
		buf.Write(materialio.BOM)
		w := materialio.NewCSVWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, err
		}
		if err := w.WriteEntries(p.Items); err != nil {
			return nil, err
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
		return &MaterialExport{
			FileName:    materialio.Filename(p, "csv"),
			ContentType: "text/csv",
			Data:        buf.Bytes(),
		}, nil
	default:
		data, err := materialio.ExportJSON(p)
		if err != nil {
			return nil, err
		}
		return &MaterialExport{
			FileName:    materialio.Filename(p, "json"),
			ContentType: "application/json",
			Data:        data,
		}, nil
	}
}

func (s *profileService) ListBrandingProfiles(ctx context.Context) []domain.BrandingProfile {
	return s.profiles.ListBrandingProfiles()
}

func (s *profileService) CreateBrandingProfile(ctx context.Context, p domain.BrandingProfile) (string, error) {
	return s.profiles.CreateBrandingProfile(ctx, p)
}

func (s *profileService) UpdateBrandingProfile(ctx context.Context, id string, patch profile.BrandingPatch) {
	s.profiles.UpdateBrandingProfile(ctx, id, patch)
}

func (s *profileService) DeleteBrandingProfile(ctx context.Context, id string) {
	s.profiles.DeleteBrandingProfile(ctx, id)
}
