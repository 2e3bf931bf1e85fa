package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

// MockProfileRepo is a mock implementation of port.ProfileRepository.
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) UpsertProfile(ctx context.Context, userID, meNow, meNext string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, meNow, meNext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) UpdateMeNext(ctx context.Context, userID, meNext string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, meNext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) ListSourceProfiles(ctx context.Context, userID string) ([]domain.SourceProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceProfile), args.Error(1)
}

func (m *MockProfileRepo) GetSourceProfile(ctx context.Context, userID string, t domain.ProfileType) (*domain.SourceProfile, error) {
	args := m.Called(ctx, userID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceProfile), args.Error(1)
}

// SaveImport records the call; tests use Run to invoke the consolidate
// callback against stored sources.
func (m *MockProfileRepo) SaveImport(ctx context.Context, sp *domain.SourceProfile, consolidate port.ConsolidateFunc) (*domain.UserProfile, error) {
	args := m.Called(ctx, sp, consolidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
