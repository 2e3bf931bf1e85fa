package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/domain"
	"beachtrack/internal/recommender"
	"beachtrack/internal/service"
	"beachtrack/mocks"
)

func TestRecommendationService_Generate(t *testing.T) {
	profiles := new(mocks.MockProfileRepo)
	recos := new(mocks.MockRecommendationRepo)
	rec := new(mocks.MockRecommender)
	svc := service.NewRecommendationService(profiles, recos, rec, 20)

	recs := []domain.Recommendation{{Goal: "Ship a kata", Activities: []string{"Pair daily"}}}
	profiles.On("GetProfile", mock.Anything, "user-1").
		Return(&domain.UserProfile{UserID: "user-1", MeNow: "Skills: Go.", MeNext: "Career Aspirations: Lead"}, nil)
	rec.On("Recommend", mock.Anything, "Skills: Go.", "Career Aspirations: Lead").
		Return(recommender.Result{Recommendations: recs, ModelUsed: "gemini/gemini-2.0-flash"})

	var stored *domain.RecommendationSet
	recos.On("Create", mock.Anything, mock.AnythingOfType("*domain.RecommendationSet")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.RecommendationSet) }).
		Return(nil)

	got, err := svc.Generate(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, recs, got.Recommendations)
	assert.False(t, got.Fallback)

	require.NotNil(t, stored)
	assert.Equal(t, got.ID, stored.ID)
	assert.Equal(t, "user-1", stored.UserID)
	assert.JSONEq(t, `{"meNow":"Skills: Go.","meNext":"Career Aspirations: Lead"}`, string(stored.ProfileSnapshot))

	var roundTrip []domain.Recommendation
	require.NoError(t, json.Unmarshal(stored.Recommendations, &roundTrip))
	assert.Equal(t, recs, roundTrip)
}

func TestRecommendationService_Generate_NoProfile(t *testing.T) {
	profiles := new(mocks.MockProfileRepo)
	recos := new(mocks.MockRecommendationRepo)
	rec := new(mocks.MockRecommender)
	svc := service.NewRecommendationService(profiles, recos, rec, 20)

	profiles.On("GetProfile", mock.Anything, "user-1").Return(nil, domain.ErrProfileNotFound)

	_, err := svc.Generate(context.Background(), "user-1")

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	rec.AssertNumberOfCalls(t, "Recommend", 0)
	recos.AssertNumberOfCalls(t, "Create", 0)
}

func TestRecommendationService_Generate_FallbackIsStored(t *testing.T) {
	profiles := new(mocks.MockProfileRepo)
	recos := new(mocks.MockRecommendationRepo)
	rec := new(mocks.MockRecommender)
	svc := service.NewRecommendationService(profiles, recos, rec, 20)

	profiles.On("GetProfile", mock.Anything, "user-1").Return(&domain.UserProfile{UserID: "user-1"}, nil)
	rec.On("Recommend", mock.Anything, "", "").
		Return(recommender.Result{Recommendations: recommender.FallbackRecommendations(), Fallback: true})
	recos.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.RecommendationSet) bool {
		return s.Fallback
	})).Return(nil)

	got, err := svc.Generate(context.Background(), "user-1")

	require.NoError(t, err)
	assert.True(t, got.Fallback)
	assert.Len(t, got.Recommendations, 2)
	recos.AssertExpectations(t)
}

func TestRecommendationService_Generate_StoreError(t *testing.T) {
	profiles := new(mocks.MockProfileRepo)
	recos := new(mocks.MockRecommendationRepo)
	rec := new(mocks.MockRecommender)
	svc := service.NewRecommendationService(profiles, recos, rec, 20)
	dbErr := errors.New("insert failed")

	profiles.On("GetProfile", mock.Anything, "user-1").Return(&domain.UserProfile{UserID: "user-1"}, nil)
	rec.On("Recommend", mock.Anything, mock.Anything, mock.Anything).
		Return(recommender.Result{Recommendations: recommender.FallbackRecommendations(), Fallback: true})
	recos.On("Create", mock.Anything, mock.Anything).Return(dbErr)

	_, err := svc.Generate(context.Background(), "user-1")

	assert.ErrorIs(t, err, dbErr)
}

func TestRecommendationService_History(t *testing.T) {
	profiles := new(mocks.MockProfileRepo)
	recos := new(mocks.MockRecommendationRepo)
	svc := service.NewRecommendationService(profiles, recos, new(mocks.MockRecommender), 5)

	sets := []domain.RecommendationSet{{UserID: "user-1"}}
	recos.On("ListByUser", mock.Anything, "user-1", 5).Return(sets, nil)

	got, err := svc.History(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, sets, got)
}
