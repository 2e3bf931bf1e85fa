package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
	"beachtrack/internal/recommender"
	"beachtrack/internal/service"
)

// MockRecommendationService is a mock implementation of service.RecommendationService.
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Generate(ctx context.Context, userID string) (*service.RecommendationResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecommendationResult), args.Error(1)
}

func (m *MockRecommendationService) History(ctx context.Context, userID string) ([]domain.RecommendationSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecommendationSet), args.Error(1)
}

// MockRecommender is a mock implementation of service.Recommender.
type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, meNow, meNext string) recommender.Result {
	args := m.Called(ctx, meNow, meNext)
	return args.Get(0).(recommender.Result)
}
