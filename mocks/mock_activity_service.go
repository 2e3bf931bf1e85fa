package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
	"beachtrack/internal/service"
)

// MockActivityService is a mock implementation of service.ActivityService.
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Create(ctx context.Context, input service.CreateActivityInput) (*domain.Activity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityService) List(ctx context.Context, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityService) Export(ctx context.Context, userID string, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, userID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}
