package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"proinvoice/internal/service"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) RenderPDF(ctx context.Context) (*service.PDFExport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PDFExport), args.Error(1)
}
