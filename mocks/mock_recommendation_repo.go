package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
)

// MockRecommendationRepo is a mock implementation of port.RecommendationRepository.
type MockRecommendationRepo struct {
	mock.Mock
}

func (m *MockRecommendationRepo) Create(ctx context.Context, set *domain.RecommendationSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockRecommendationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.RecommendationSet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecommendationSet), args.Error(1)
}
