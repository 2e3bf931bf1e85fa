package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
)

// MockActivityRepo is a mock implementation of port.ActivityRepository.
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepo) ListByUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}
