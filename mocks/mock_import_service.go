package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
	"beachtrack/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, input service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) Detect(ctx context.Context, input service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) History(ctx context.Context, userID string) (domain.ImportHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ImportHistory), args.Error(1)
}

func (m *MockImportService) GetSourceProfile(ctx context.Context, userID, profileType string) (*domain.SourceProfile, error) {
	args := m.Called(ctx, userID, profileType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceProfile), args.Error(1)
}

func (m *MockImportService) GenerateMeNext(ctx context.Context, userID string, persist bool) (*service.MeNextResult, error) {
	args := m.Called(ctx, userID, persist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MeNextResult), args.Error(1)
}

func (m *MockImportService) ArchiveURL(ctx context.Context, userID, profileType string) (string, error) {
	args := m.Called(ctx, userID, profileType)
	return args.String(0), args.Error(1)
}
