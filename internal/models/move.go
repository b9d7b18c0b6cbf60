package models

import (
	"fmt"
	"time"
)

// Move is a persisted record of one file relocation within a run.
type Move struct {
	id         string
	runID      string
	sourcePath string
	destPath   string
	category   string
	createdAt  time.Time
}

// NewMove creates a Move belonging to the given run.
// The ID is assigned by the repository on Create.
func NewMove(runID, sourcePath, destPath, category string) *Move {
	return &Move{
		runID:      runID,
		sourcePath: sourcePath,
		destPath:   destPath,
		category:   category,
		createdAt:  time.Now(),
	}
}

// RestoreMove reconstructs a Move from database columns.
func RestoreMove(id, runID, sourcePath, destPath, category string, createdAt time.Time) *Move {
	return &Move{
		id:         id,
		runID:      runID,
		sourcePath: sourcePath,
		destPath:   destPath,
		category:   category,
		createdAt:  createdAt,
	}
}

func (m *Move) ID() string           { return m.id }
func (m *Move) RunID() string        { return m.runID }
func (m *Move) SourcePath() string   { return m.sourcePath }
func (m *Move) DestPath() string     { return m.destPath }
func (m *Move) Category() string     { return m.category }
func (m *Move) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the creation time; move rows are immutable once written.
func (m *Move) UpdatedAt() time.Time { return m.createdAt }

func (m *Move) SetID(id string) { m.id = id }

// Validate checks that the move references a run and both endpoints.
func (m *Move) Validate() error {
	if m.runID == "" {
		return fmt.Errorf("move requires a run ID")
	}
	if m.sourcePath == "" || m.destPath == "" {
		return fmt.Errorf("move requires source and destination paths")
	}
	if m.category == "" {
		return fmt.Errorf("move requires a category")
	}
	return nil
}
