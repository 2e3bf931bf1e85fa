package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

type activityRepo struct {
	db *sqlx.DB
}

// NewActivityRepo creates a new PostgreSQL-backed ActivityRepository.
func NewActivityRepo(db *sqlx.DB) port.ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (id, user_id, description, activity_date, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Description, a.Date, a.Category, a.Timestamp)
	if err != nil {
		return fmt.Errorf("activityRepo.Create: %w", err)
	}
	return nil
}

func (r *activityRepo) ListByUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	err := r.db.SelectContext(ctx, &activities,
		`SELECT id, user_id, description, activity_date::text AS activity_date, category, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("activityRepo.ListByUser: %w", err)
	}
	return activities, nil
}
