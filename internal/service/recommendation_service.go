package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
	"beachtrack/internal/recommender"
)

// RecommendationResult is a freshly generated and stored recommendation set.
type RecommendationResult struct {
	ID              uuid.UUID               `json:"id"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Fallback        bool                    `json:"fallback"`
	Timestamp       time.Time               `json:"timestamp"`
}

// RecommendationService defines the recommendation contract.
type RecommendationService interface {
	Generate(ctx context.Context, userID string) (*RecommendationResult, error)
	History(ctx context.Context, userID string) ([]domain.RecommendationSet, error)
}

// Recommender produces recommendations for a profile. It is satisfied by
// *recommender.Recommender.
type Recommender interface {
	Recommend(ctx context.Context, meNow, meNext string) recommender.Result
}

type recommendationService struct {
	profileRepo port.ProfileRepository
	recoRepo    port.RecommendationRepository
	recommender Recommender
	historySize int
	now         func() time.Time
}

// NewRecommendationService creates a new RecommendationService implementation.
func NewRecommendationService(
	profileRepo port.ProfileRepository,
	recoRepo port.RecommendationRepository,
	rec Recommender,
	historySize int,
) RecommendationService {
	return &recommendationService{
		profileRepo: profileRepo,
		recoRepo:    recoRepo,
		recommender: rec,
		historySize: historySize,
		now:         time.Now,
	}
}

func (s *recommendationService) Generate(ctx context.Context, userID string) (*RecommendationResult, error) {
	p, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := s.recommender.Recommend(ctx, p.MeNow, p.MeNext)
	if res.Fallback {
		log.Printf("recommendationService.Generate: serving fallback recommendations to user %s", userID)
	}

	snapshot, err := json.Marshal(domain.Summary{MeNow: p.MeNow, MeNext: p.MeNext})
	if err != nil {
		return nil, fmt.Errorf("recommendationService.Generate: encoding snapshot: %w", err)
	}
	recs, err := json.Marshal(res.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("recommendationService.Generate: encoding recommendations: %w", err)
	}

	set := &domain.RecommendationSet{
		ID:              uuid.New(),
		UserID:          userID,
		ProfileSnapshot: snapshot,
		Recommendations: recs,
		Fallback:        res.Fallback,
		Timestamp:       s.now().UTC(),
	}
	if err := s.recoRepo.Create(ctx, set); err != nil {
		log.Printf("recommendationService.Generate: storing set for user %s failed: %v", userID, err)
		return nil, fmt.Errorf("recommendationService.Generate: %w", err)
	}

	return &RecommendationResult{
		ID:              set.ID,
		Recommendations: res.Recommendations,
		Fallback:        res.Fallback,
		Timestamp:       set.Timestamp,
	}, nil
}

// History returns the user's stored recommendation sets, newest first.
func (s *recommendationService) History(ctx context.Context, userID string) ([]domain.RecommendationSet, error) {
	sets, err := s.recoRepo.ListByUser(ctx, userID, s.historySize)
	if err != nil {
		return nil, fmt.Errorf("recommendationService.History: %w", err)
	}
	return sets, nil
}
