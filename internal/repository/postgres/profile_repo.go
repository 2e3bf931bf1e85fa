package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

const profileColumns = "user_id, me_now, me_next, created_at, updated_at"

const sourceProfileColumns = "user_id, profile_type, me_now, me_next, imported_data, last_imported, import_source, archive_key"

// sourceProfileRow is the storage shape of a SourceProfile; imported_data is JSONB.
type sourceProfileRow struct {
	domain.SourceProfile
	ImportedData []byte `db:"imported_data"`
}

func (row *sourceProfileRow) toDomain() (domain.SourceProfile, error) {
	sp := row.SourceProfile
	sp.ImportedData = domain.NewParsedDocument("")
	if len(row.ImportedData) > 0 {
		if err := json.Unmarshal(row.ImportedData, &sp.ImportedData); err != nil {
			return sp, fmt.Errorf("decoding imported_data for %s: %w", sp.ProfileType, err)
		}
	}
	return sp, nil
}

type profileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new PostgreSQL-backed ProfileRepository.
func NewProfileRepo(db *sqlx.DB) port.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.GetContext(ctx, &p,
		"SELECT "+profileColumns+" FROM user_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetProfile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) UpsertProfile(ctx context.Context, userID, meNow, meNext string) (*domain.UserProfile, error) {
	p, err := upsertProfile(ctx, r.db, userID, meNow, meNext)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.UpsertProfile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) UpdateMeNext(ctx context.Context, userID, meNext string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.GetContext(ctx, &p,
		`UPDATE user_profiles SET me_next = $2, updated_at = $3
		WHERE user_id = $1
		RETURNING `+profileColumns,
		userID, meNext, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.UpdateMeNext: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) ListSourceProfiles(ctx context.Context, userID string) ([]domain.SourceProfile, error) {
	sources, err := listSourceProfiles(ctx, r.db, userID, false)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.ListSourceProfiles: %w", err)
	}
	return sources, nil
}

func (r *profileRepo) GetSourceProfile(ctx context.Context, userID string, t domain.ProfileType) (*domain.SourceProfile, error) {
	var row sourceProfileRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+sourceProfileColumns+" FROM source_profiles WHERE user_id = $1 AND profile_type = $2",
		userID, t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSourceProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetSourceProfile: %w", err)
	}
	sp, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("profileRepo.GetSourceProfile: %w", err)
	}
	return &sp, nil
}

// SaveImport serialises imports per user by locking the user_profiles row,
// so consolidation always sees the other sources as last committed.
func (r *profileRepo) SaveImport(ctx context.Context, sp *domain.SourceProfile, consolidate port.ConsolidateFunc) (*domain.UserProfile, error) {
	data, err := json.Marshal(sp.ImportedData)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: encoding imported data: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, me_now, me_next, created_at, updated_at)
		VALUES ($1, '', '', $2, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		sp.UserID, now); err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: ensuring profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"SELECT 1 FROM user_profiles WHERE user_id = $1 FOR UPDATE", sp.UserID); err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: locking profile: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO source_profiles (`+sourceProfileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, profile_type) DO UPDATE SET
			me_now = EXCLUDED.me_now,
			me_next = EXCLUDED.me_next,
			imported_data = EXCLUDED.imported_data,
			last_imported = EXCLUDED.last_imported,
			import_source = EXCLUDED.import_source,
			archive_key = EXCLUDED.archive_key`,
		sp.UserID, sp.ProfileType, sp.MeNow, sp.MeNext, data,
		sp.LastImported, sp.ImportSource, sp.ArchiveKey)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: writing source profile: %w", err)
	}

	sources, err := listSourceProfiles(ctx, tx, sp.UserID, true)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: %w", err)
	}

	summary := consolidate(sources)
	p, err := upsertProfile(ctx, tx, sp.UserID, summary.MeNow, summary.MeNext)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: writing profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("profileRepo.SaveImport: commit: %w", err)
	}
	return p, nil
}

func upsertProfile(ctx context.Context, q sqlx.QueryerContext, userID, meNow, meNext string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := sqlx.GetContext(ctx, q, &p,
		`INSERT INTO user_profiles (user_id, me_now, me_next, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			me_now = EXCLUDED.me_now,
			me_next = EXCLUDED.me_next,
			updated_at = EXCLUDED.updated_at
		RETURNING `+profileColumns,
		userID, meNow, meNext, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// listSourceProfiles returns sources in consolidation order. strict makes a
// corrupt imported_data value an error instead of an empty document.
func listSourceProfiles(ctx context.Context, q sqlx.QueryerContext, userID string, strict bool) ([]domain.SourceProfile, error) {
	var rows []sourceProfileRow
	err := sqlx.SelectContext(ctx, q, &rows,
		`SELECT `+sourceProfileColumns+` FROM source_profiles
		WHERE user_id = $1
		ORDER BY CASE profile_type WHEN 'jigsaw' THEN 1 WHEN 'pathways' THEN 2 WHEN 'workday' THEN 3 ELSE 4 END`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listing source profiles: %w", err)
	}

	sources := make([]domain.SourceProfile, 0, len(rows))
	for i := range rows {
		sp, err := rows[i].toDomain()
		if err != nil {
			if strict {
				return nil, err
			}
			sp.ImportedData = domain.NewParsedDocument("")
		}
		sources = append(sources, sp)
	}
	return sources, nil
}
