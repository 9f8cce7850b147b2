package store

import (
	"context"
	"database/sql"
	"time"
)

// RunRecord is one reconciliation run as persisted.
type RunRecord struct {
	ID            string         `db:"id"`
	Status        string         `db:"status"`
	Stage         string         `db:"stage"`
	SourceFile    string         `db:"source_file"`
	TotalRows     int64          `db:"total_rows"`
	ProcessedRows int64          `db:"processed_rows"`
	WarningCount  int            `db:"warning_count"`
	ErrorMessage  sql.NullString `db:"error_message"`
	StartedAt     time.Time      `db:"started_at"`
	CompletedAt   sql.NullTime   `db:"completed_at"`
}

// RunStore handles database operations for run tracking.
type RunStore struct {
	db *DB
}

func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// CreateRun inserts a new run record.
func (s *RunStore) CreateRun(ctx context.Context, run *RunRecord) error {
	query := `
		INSERT INTO recon_runs (
			id, status, stage, source_file, total_rows,
			processed_rows, warning_count, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(
		ctx, query,
		run.ID, run.Status, run.Stage, run.SourceFile,
		run.TotalRows, run.ProcessedRows, run.WarningCount, run.StartedAt,
	)

	return err
}

// UpdateProgress records the latest stage and processed row count.
func (s *RunStore) UpdateProgress(ctx context.Context, id, stage string, processed, total int64) error {
	query := `
		UPDATE recon_runs
		SET stage = $1, processed_rows = $2, total_rows = $3
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query, stage, processed, total, id)
	return err
}

// FinishRun marks a run terminal with its final status.
func (s *RunStore) FinishRun(ctx context.Context, id, status, errorMessage string, warnings int) error {
	query := `
		UPDATE recon_runs
		SET status = $1, error_message = NULLIF($2, ''), warning_count = $3, completed_at = $4
		WHERE id = $5
	`

	_, err := s.db.ExecContext(ctx, query, status, errorMessage, warnings, time.Now().UTC(), id)
	return err
}

// GetRun retrieves a run by ID, nil when unknown.
func (s *RunStore) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	query := `
		SELECT id, status, stage, source_file, total_rows,
		       processed_rows, warning_count, error_message, started_at, completed_at
		FROM recon_runs
		WHERE id = $1
	`

	run := &RunRecord{}
	err := s.db.GetContext(ctx, run, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, status, stage, source_file, total_rows,
		       processed_rows, warning_count, error_message, started_at, completed_at
		FROM recon_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	runs := []RunRecord{}
	if err := s.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, err
	}

	return runs, nil
}
