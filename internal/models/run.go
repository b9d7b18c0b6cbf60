package models

import (
	"fmt"
	"time"
)

// Run is a persisted record of one organize run.
//
// Counts mirror the aggregate result the engine returned; dry runs are
// recorded only when the caller opts in.
type Run struct {
	id           string
	sequence     int
	targetDir    string
	dryRun       bool
	movedCount   int
	skippedCount int
	failedCount  int
	duration     time.Duration
	createdAt    time.Time
	updatedAt    time.Time
}

// NewRun creates a Run for the given target directory.
// The ID is assigned by the repository on Create.
func NewRun(sequence int, targetDir string, dryRun bool) *Run {
	now := time.Now()
	return &Run{
		sequence:  sequence,
		targetDir: targetDir,
		dryRun:    dryRun,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreRun reconstructs a Run from database columns.
func RestoreRun(id string, sequence int, targetDir string, dryRun bool, moved, skipped, failed int, duration time.Duration, createdAt, updatedAt time.Time) *Run {
	return &Run{
		id:           id,
		sequence:     sequence,
		targetDir:    targetDir,
		dryRun:       dryRun,
		movedCount:   moved,
		skippedCount: skipped,
		failedCount:  failed,
		duration:     duration,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Run) ID() string              { return r.id }
func (r *Run) Sequence() int           { return r.sequence }
func (r *Run) TargetDir() string       { return r.targetDir }
func (r *Run) DryRun() bool            { return r.dryRun }
func (r *Run) MovedCount() int         { return r.movedCount }
func (r *Run) SkippedCount() int       { return r.skippedCount }
func (r *Run) FailedCount() int        { return r.failedCount }
func (r *Run) Duration() time.Duration { return r.duration }
func (r *Run) CreatedAt() time.Time    { return r.createdAt }
func (r *Run) UpdatedAt() time.Time    { return r.updatedAt }

func (r *Run) SetID(id string)             { r.id = id }
func (r *Run) SetUpdatedAt(t time.Time)    { r.updatedAt = t }
func (r *Run) SetDuration(d time.Duration) { r.duration = d }

// SetCounts records the aggregate outcome of the run.
func (r *Run) SetCounts(moved, skipped, failed int) {
	r.movedCount = moved
	r.skippedCount = skipped
	r.failedCount = failed
}

// Validate checks that the run references a target directory.
func (r *Run) Validate() error {
	if r.targetDir == "" {
		return fmt.Errorf("run requires a target directory")
	}
	return nil
}
