package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"proinvoice/internal/domain"
	"proinvoice/internal/session"
)

type MockPreferencesService struct {
	mock.Mock
}

func (m *MockPreferencesService) Get(ctx context.Context) domain.Preferences {
	args := m.Called(ctx)
	return args.Get(0).(domain.Preferences)
}

func (m *MockPreferencesService) Update(ctx context.Context, patch session.PreferencesPatch) domain.Preferences {
	args := m.Called(ctx, patch)
	return args.Get(0).(domain.Preferences)
}

func (m *MockPreferencesService) ApplyBranding(ctx context.Context, brandingID string) (domain.Document, error) {
	args := m.Called(ctx, brandingID)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockPreferencesService) Fonts(ctx context.Context) []domain.Font {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Font)
}
