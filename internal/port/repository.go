package port

import (
	"context"

	"beachtrack/internal/domain"
)

// ConsolidateFunc recomputes the user-facing profile from every stored source
// profile of a user, including the one being written.
type ConsolidateFunc func(sources []domain.SourceProfile) domain.Summary

// ProfileRepository defines the contract for user and source profile persistence.
// All methods are scoped by the authenticated user's id.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, userID, meNow, meNext string) (*domain.UserProfile, error)
	UpdateMeNext(ctx context.Context, userID, meNext string) (*domain.UserProfile, error)
	ListSourceProfiles(ctx context.Context, userID string) ([]domain.SourceProfile, error)
	GetSourceProfile(ctx context.Context, userID string, t domain.ProfileType) (*domain.SourceProfile, error)
	// SaveImport replaces the source profile for sp.ProfileType, then rereads all
	// source profiles and stores consolidate's result as the user profile, in
	// one transaction. Nothing is written if any step fails.
	SaveImport(ctx context.Context, sp *domain.SourceProfile, consolidate ConsolidateFunc) (*domain.UserProfile, error)
}

// ActivityRepository defines the contract for activity persistence.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByUser(ctx context.Context, userID string) ([]domain.Activity, error)
}

// RecommendationRepository defines the contract for recommendation history persistence.
type RecommendationRepository interface {
	Create(ctx context.Context, set *domain.RecommendationSet) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.RecommendationSet, error)
}
