package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"proinvoice/internal/domain"
	"proinvoice/internal/service"
	"proinvoice/internal/session"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Get(ctx context.Context) domain.Document {
	args := m.Called(ctx)
	return args.Get(0).(domain.Document)
}

func (m *MockDocumentService) Patch(ctx context.Context, patch session.DocumentPatch) (domain.Document, error) {
	args := m.Called(ctx, patch)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockDocumentService) AddItem(ctx context.Context, input service.AddItemInput) (domain.Document, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockDocumentService) DuplicateItem(ctx context.Context, itemID string) (domain.Document, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateItem(ctx context.Context, itemID string, patch session.LineItemPatch) domain.Document {
	args := m.Called(ctx, itemID, patch)
	return args.Get(0).(domain.Document)
}

func (m *MockDocumentService) RemoveItem(ctx context.Context, itemID string) domain.Document {
	args := m.Called(ctx, itemID)
	return args.Get(0).(domain.Document)
}

func (m *MockDocumentService) Reset(ctx context.Context) domain.Document {
	args := m.Called(ctx)
	return args.Get(0).(domain.Document)
}

func (m *MockDocumentService) Totals(ctx context.Context) domain.Totals {
	args := m.Called(ctx)
	return args.Get(0).(domain.Totals)
}
