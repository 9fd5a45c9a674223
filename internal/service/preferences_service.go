package service

import (
	"context"

	"proinvoice/internal/domain"
	"proinvoice/internal/profile"
	"proinvoice/internal/session"
)

// PreferencesService defines the preference record contract plus the font
// catalog it selects from.
type PreferencesService interface {
	Get(ctx context.Context) domain.Preferences
	Update(ctx context.Context, patch session.PreferencesPatch) domain.Preferences
	ApplyBranding(ctx context.Context, brandingID string) (domain.Document, error)
	Fonts(ctx context.Context) []domain.Font
}

type preferencesService struct {
	session  *session.Manager
	profiles *profile.Store
}

// NewPreferencesService creates a PreferencesService.
func NewPreferencesService(sess *session.Manager, profiles *profile.Store) PreferencesService {
	return &preferencesService{session: sess, profiles: profiles}
}

func (s *preferencesService) Get(ctx context.Context) domain.Preferences {
	return s.session.Preferences()
}

func (s *preferencesService) Update(ctx context.Context, patch session.PreferencesPatch) domain.Preferences {
	return s.session.UpdatePreferences(ctx, patch)
}

// ApplyBranding rewrites the draft's from-party from a branding profile and
// records the selection.
func (s *preferencesService) ApplyBranding(ctx context.Context, brandingID string) (domain.Document, error) {
	b := s.profiles.ResolveBranding(brandingID)
	if b == nil {
		return domain.Document{}, domain.ErrNotFound
	}
	s.session.ApplyBranding(b)
	return s.session.Document(), nil
}

func (s *preferencesService) Fonts(ctx context.Context) []domain.Font {
	return domain.AvailableFonts
}
