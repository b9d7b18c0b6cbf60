package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/tidy/internal/models"
	"github.com/desertthunder/tidy/internal/organizer"
)

// HistoryRecorder writes an engine run into the history journal.
//
// One Record call produces a runs row plus one moves row per relocated file.
// Failures and skips are stored only as counts; the journal records what
// happened, it cannot replay or reverse it.
type HistoryRecorder struct {
	runs  *RunRepository
	moves *MoveRepository
}

// NewHistoryRecorder creates a HistoryRecorder over the given database connection
func NewHistoryRecorder(db *sql.DB) *HistoryRecorder {
	return &HistoryRecorder{
		runs:  NewRunRepository(db),
		moves: NewMoveRepository(db),
	}
}

// Record persists the aggregate result of one organize run.
// Returns the created Run so callers can surface its ID.
func (h *HistoryRecorder) Record(result *organizer.RunResult) (*models.Run, error) {
	run := models.NewRun(0, result.TargetDir, result.DryRun)
	run.SetCounts(len(result.Moved), result.Skipped, len(result.Failures))
	run.SetDuration(result.Duration)

	if err := h.runs.Create(run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	for _, rec := range result.Moved {
		move := models.NewMove(run.ID(), rec.Source, rec.Dest, rec.Category)
		if err := h.moves.Create(move); err != nil {
			return run, fmt.Errorf("failed to record move %s: %w", rec.Name, err)
		}
	}

	return run, nil
}
