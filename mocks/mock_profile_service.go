package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
	"beachtrack/internal/service"
)

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileService) GetForUser(ctx context.Context, requesterID, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, requesterID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, input service.UpdateProfileInput) (*domain.UserProfile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
