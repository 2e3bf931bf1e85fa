package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"beachtrack/internal/config"
)

// connectWindow bounds how long NewDB keeps retrying while the database starts up.
const connectWindow = 30 * time.Second

// NewDB creates a new PostgreSQL connection pool, retrying the initial
// connection with exponential backoff.
func NewDB(ctx context.Context, cfg *config.DBConfig) (*sqlx.DB, error) {
	connect := func() (*sqlx.DB, error) {
		return sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	db, err := backoff.Retry(ctx, connect,
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(connectWindow),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Printf("postgres.NewDB: connect failed, retrying in %s: %v", next.Round(time.Millisecond), err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}
