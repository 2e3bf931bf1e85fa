package service

import (
	"context"
	"fmt"
	"log"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

// UpdateProfileInput is the DTO for manual profile edits.
type UpdateProfileInput struct {
	UserID string
	MeNow  string
	MeNext string
}

// ProfileService defines the user profile contract.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	GetForUser(ctx context.Context, requesterID, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, input UpdateProfileInput) (*domain.UserProfile, error)
}

type profileService struct {
	profileRepo port.ProfileRepository
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(profileRepo port.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profileRepo.GetProfile(ctx, userID)
}

// GetForUser returns userID's profile if requesterID is that user.
func (s *profileService) GetForUser(ctx context.Context, requesterID, userID string) (*domain.UserProfile, error) {
	if requesterID != userID {
		log.Printf("profileService.GetForUser: user %s denied access to profile of %s", requesterID, userID)
		return nil, domain.ErrForbidden
	}
	return s.profileRepo.GetProfile(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, input UpdateProfileInput) (*domain.UserProfile, error) {
	p, err := s.profileRepo.UpsertProfile(ctx, input.UserID, input.MeNow, input.MeNext)
	if err != nil {
		return nil, fmt.Errorf("profileService.Update: %w", err)
	}
	return p, nil
}
