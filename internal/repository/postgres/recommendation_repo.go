package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

// recommendationSetRow scans the JSONB columns as raw bytes.
type recommendationSetRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          string    `db:"user_id"`
	ProfileSnapshot []byte    `db:"profile_snapshot"`
	Recommendations []byte    `db:"recommendations"`
	Fallback        bool      `db:"is_fallback"`
	CreatedAt       time.Time `db:"created_at"`
}

type recommendationRepo struct {
	db *sqlx.DB
}

// NewRecommendationRepo creates a new PostgreSQL-backed RecommendationRepository.
func NewRecommendationRepo(db *sqlx.DB) port.RecommendationRepository {
	return &recommendationRepo{db: db}
}

func (r *recommendationRepo) Create(ctx context.Context, set *domain.RecommendationSet) error {
	query := `INSERT INTO recommendation_sets (id, user_id, profile_snapshot, recommendations, is_fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		set.ID, set.UserID, []byte(set.ProfileSnapshot), []byte(set.Recommendations),
		set.Fallback, set.Timestamp)
	if err != nil {
		return fmt.Errorf("recommendationRepo.Create: %w", err)
	}
	return nil
}

// ListByUser returns at most limit sets, newest first. limit <= 0 means no limit.
func (r *recommendationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.RecommendationSet, error) {
	query := `SELECT id, user_id, profile_snapshot, recommendations, is_fallback, created_at
		FROM recommendation_sets
		WHERE user_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var rows []recommendationSetRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("recommendationRepo.ListByUser: %w", err)
	}

	sets := make([]domain.RecommendationSet, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		sets = append(sets, domain.RecommendationSet{
			ID:              row.ID,
			UserID:          row.UserID,
			ProfileSnapshot: json.RawMessage(row.ProfileSnapshot),
			Recommendations: json.RawMessage(row.Recommendations),
			Fallback:        row.Fallback,
			Timestamp:       row.CreatedAt,
		})
	}
	return sets, nil
}
