package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Export(ctx context.Context) (string, []byte, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *MockBackupService) Restore(ctx context.Context, raw []byte) error {
	args := m.Called(ctx, raw)
	return args.Error(0)
}

func (m *MockBackupService) ResetAll(ctx context.Context, confirm bool) error {
	args := m.Called(ctx, confirm)
	return args.Error(0)
}
