package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"proinvoice/internal/domain"
	"proinvoice/internal/service"
)

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) List(ctx context.Context) []domain.SavedDocument {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SavedDocument)
}

func (m *MockLibraryService) Save(ctx context.Context, input service.SaveDocumentInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockLibraryService) Load(ctx context.Context, id string) (domain.Document, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockLibraryService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
