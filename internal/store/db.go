// Package store persists run tracking records in Postgres. The server
// runs fine without it; when the database is disabled run state lives
// only in memory.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/semaphore"

	"github.com/hmshaban/jard-backend/internal/config"
)

type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates the shared database connection pool.
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	var err error
	once.Do(func() {
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		var db *sqlx.DB
		db, err = sqlx.Connect("pgx", connStr)
		if err != nil {
			return
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		dbInstance = &DB{
			DB:  db,
			sem: semaphore.NewWeighted(10),
		}
	})

	return dbInstance, err
}

const schema = `
CREATE TABLE IF NOT EXISTS recon_runs (
	id             UUID PRIMARY KEY,
	status         TEXT NOT NULL,
	stage          TEXT NOT NULL DEFAULT '',
	source_file    TEXT NOT NULL DEFAULT '',
	total_rows     BIGINT NOT NULL DEFAULT 0,
	processed_rows BIGINT NOT NULL DEFAULT 0,
	warning_count  INT NOT NULL DEFAULT 0,
	error_message  TEXT,
	started_at     TIMESTAMPTZ NOT NULL,
	completed_at   TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_recon_runs_started_at ON recon_runs (started_at DESC);
`

// EnsureSchema creates the run tracking table when it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	_, err := db.ExecContext(ctx, schema)
	return err
}
