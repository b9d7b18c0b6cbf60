package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tidy/internal/models"
	"github.com/desertthunder/tidy/internal/shared"
)

// MoveRepository persists the per-file move rows of the history journal.
//
// Move rows are immutable once written, so only Create and queries are
// provided.
type MoveRepository struct {
	db *sql.DB
}

// NewMoveRepository creates a new MoveRepository with the given database connection
func NewMoveRepository(db *sql.DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create inserts a new move into the database with a generated ID
func (r *MoveRepository) Create(move *models.Move) error {
	id := shared.GenerateID()
	move.SetID(id)

	if err := move.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO moves (id, run_id, source_path, dest_path, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		move.RunID(),
		move.SourcePath(),
		move.DestPath(),
		move.Category(),
		move.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert move: %w", err)
	}

	return nil
}

// ListByRun retrieves every move belonging to a run, in insertion order.
func (r *MoveRepository) ListByRun(runID string) ([]*models.Move, error) {
	query := `
		SELECT id, run_id, source_path, dest_path, category, created_at
		FROM moves
		WHERE run_id = ?
		ORDER BY rowid ASC
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var moves []*models.Move
	for rows.Next() {
		var (
			id, rID, src, dst, category string
			createdAt                   time.Time
		)
		if err := rows.Scan(&id, &rID, &src, &dst, &category, &createdAt); err != nil {
			return nil, err
		}
		moves = append(moves, models.RestoreMove(id, rID, src, dst, category, createdAt))
	}

	return moves, rows.Err()
}
