package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tidy/internal/models"
	"github.com/desertthunder/tidy/internal/shared"
)

// RunRepository implements models.Repository[*models.Run] for the history journal.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run into the database with generated ID and sequence
func (r *RunRepository) Create(run *models.Run) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	run.SetID(id)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO runs (id, sequence, target_dir, dry_run, moved_count, skipped_count, failed_count, duration_ms, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		run.TargetDir(),
		run.DryRun(),
		run.MovedCount(),
		run.SkippedCount(),
		run.FailedCount(),
		run.Duration().Milliseconds(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(id string) (*models.Run, error) {
	query := `
		SELECT id, sequence, target_dir, dry_run, moved_count, skipped_count, failed_count, duration_ms, created_at, updated_at
		FROM runs
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing run's counts and duration
func (r *RunRepository) Update(run *models.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE runs
		SET moved_count = ?, skipped_count = ?, failed_count = ?, duration_ms = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		run.MovedCount(),
		run.SkippedCount(),
		run.FailedCount(),
		run.Duration().Milliseconds(),
		now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, run.ID())
	}

	return nil
}

// Delete removes a run and its moves from the database
func (r *RunRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM moves WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete moves: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	return tx.Commit()
}

// List retrieves runs matching the given criteria, newest first.
// Supported criteria: "target_dir" (string), "limit" (int).
func (r *RunRepository) List(criteria map[string]any) ([]*models.Run, error) {
	query := `
		SELECT id, sequence, target_dir, dry_run, moved_count, skipped_count, failed_count, duration_ms, created_at, updated_at
		FROM runs
	`
	args := []any{}

	if targetDir, ok := criteria["target_dir"].(string); ok {
		query += " WHERE target_dir = ?"
		args = append(args, targetDir)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *RunRepository) scanOne(row *sql.Row) (*models.Run, error) {
	run, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrRunNotFound
	}
	return run, err
}

func (r *RunRepository) scanRow(row scannable) (*models.Run, error) {
	var (
		id, targetDir        string
		sequence             int
		dryRun               bool
		moved, skipped, fail int
		durationMS           int64
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &sequence, &targetDir, &dryRun, &moved, &skipped, &fail, &durationMS, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return models.RestoreRun(id, sequence, targetDir, dryRun, moved, skipped, fail, time.Duration(durationMS)*time.Millisecond, createdAt, updatedAt), nil
}
