package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"beachtrack/internal/domain"
	"beachtrack/internal/export"
	"beachtrack/internal/port"
)

// CreateActivityInput is the DTO for logging an activity.
type CreateActivityInput struct {
	UserID      string
	Description string
	Date        string
	Category    string
}

// ExportFile is a rendered activity export.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ActivityService defines the activity log contract.
type ActivityService interface {
	Create(ctx context.Context, input CreateActivityInput) (*domain.Activity, error)
	List(ctx context.Context, userID string) ([]domain.Activity, error)
	Export(ctx context.Context, userID string, format domain.ExportFormat) (*ExportFile, error)
}

type activityService struct {
	activityRepo port.ActivityRepository
	now          func() time.Time
}

// NewActivityService creates a new ActivityService implementation.
func NewActivityService(activityRepo port.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo, now: time.Now}
}

func (s *activityService) Create(ctx context.Context, input CreateActivityInput) (*domain.Activity, error) {
	activity := &domain.Activity{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Description: input.Description,
		Date:        input.Date,
		Category:    input.Category,
		Timestamp:   s.now().UTC(),
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		log.Printf("activityService.Create: failed for user %s: %v", input.UserID, err)
		return nil, fmt.Errorf("activityService.Create: %w", err)
	}
	return activity, nil
}

// List returns the user's activities, newest first.
func (s *activityService) List(ctx context.Context, userID string) ([]domain.Activity, error) {
	activities, err := s.activityRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("activityService.List: %w", err)
	}
	return activities, nil
}

func (s *activityService) Export(ctx context.Context, userID string, format domain.ExportFormat) (*ExportFile, error) {
	activities, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, activities); err != nil {
		return nil, fmt.Errorf("activityService.Export: %w", err)
	}

	log.Printf("activityService.Export: exported %d activities for user %s as %s", len(activities), userID, format)

	return &ExportFile{
		FileName:    export.FileName(format, s.now()),
		ContentType: export.ContentType(format),
		Data:        buf.Bytes(),
	}, nil
}
