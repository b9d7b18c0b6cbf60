package organizer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tidy/internal/shared"
)

// Config holds the inputs for one organize run.
//
// A Config is immutable for the duration of the run; the engine never writes
// to it.
type Config struct {
	TargetDir string // Directory to organize
	DryRun    bool   // Report planned moves without touching the filesystem
	Verbose   bool   // Emit debug detail for skipped entries
}

// MoveRecord describes one completed (or, under dry-run, planned) move.
type MoveRecord struct {
	Name     string // Original filename
	Source   string // Full source path
	Dest     string // Full destination path
	Category string // Category directory the file was filed under
}

// EntryError records a per-entry failure that did not abort the run.
type EntryError struct {
	Name string // Filename the failure belongs to
	Err  error  // Underlying cause
}

// RunResult is the aggregate outcome of one organize run.
type RunResult struct {
	TargetDir string        // Directory that was organized
	DryRun    bool          // Whether Moved holds planned rather than performed moves
	Scanned   int           // Directory entries visited
	Moved     []MoveRecord  // Moves performed (or planned under dry-run)
	Skipped   int           // Non-regular and unreadable entries passed over
	Failures  []EntryError  // Entries that could not be processed
	Duration  time.Duration // Wall-clock time for the run
}

// ExitCode folds the per-entry outcomes into the process status: 0 when every
// entry that required action succeeded, 1 otherwise.
func (r *RunResult) ExitCode() int {
	if len(r.Failures) > 0 {
		return 1
	}
	return 0
}

// ByCategory returns per-category move counts for summary output.
func (r *RunResult) ByCategory() map[string]int {
	counts := make(map[string]int)
	for _, rec := range r.Moved {
		counts[rec.Category]++
	}
	return counts
}

// Organizer runs the classify/provision/resolve/move pipeline over a single
// directory.
//
// There is no internal concurrency: every operation is a blocking syscall
// executed in sequence. Callers must not run two organizers against the same
// target directory simultaneously.
type Organizer struct {
	cfg        Config
	classifier *Classifier
	logger     *log.Logger
}

// OrganizerOpts contains configuration options for creating an Organizer.
type OrganizerOpts struct {
	Config Config
	Rules  map[string]string // Extra extension -> category rules from config
	Logger *log.Logger
}

// NewOrganizer creates a new Organizer with the provided configuration.
func NewOrganizer(opts OrganizerOpts) *Organizer {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Organizer{
		cfg:        opts.Config,
		classifier: NewClassifier(opts.Rules),
		logger:     opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (o *Organizer) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// validate confirms the target directory exists and is a directory.
//
// Validation failures abort the entire run; no entries are processed.
func (o *Organizer) validate() error {
	if o.cfg.TargetDir == "" {
		return fmt.Errorf("%w: no target directory", shared.ErrInvalidConfig)
	}

	info, err := os.Stat(o.cfg.TargetDir)
	if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", o.cfg.TargetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", shared.ErrNotADirectory, o.cfg.TargetDir)
	}

	return nil
}

// provisionDir ensures the category directory for one entry, respecting
// dry-run.
//
// Under dry-run nothing is created; a category path occupied by a
// non-directory still fails so the dry-run report matches what a real run
// would do.
func (o *Organizer) provisionDir(category string) (string, error) {
	if o.cfg.DryRun {
		path := JoinPath(o.cfg.TargetDir, category)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return "", fmt.Errorf("%w: %s", shared.ErrNotADirectory, path)
		}
		return path, nil
	}

	path, created, err := EnsureCategoryDir(o.cfg.TargetDir, category)
	if err != nil {
		return "", err
	}
	if created {
		o.logger.Info("created directory", "path", path)
	}

	return path, nil
}

// Organize performs one full run and returns the aggregate result.
//
// A nil result with a non-nil error means the run could not start (bad
// config, unreadable or non-directory target). Per-entry failures are logged,
// recorded in the result, and never abort the scan.
func (o *Organizer) Organize(ctx context.Context, progress chan<- ProgressUpdate) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(o.cfg.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", o.cfg.TargetDir, err)
	}

	mode := ""
	if o.cfg.DryRun {
		mode = " (dry-run mode)"
	}
	o.logger.Infof("organizing files in %s%s", o.cfg.TargetDir, mode)

	start := time.Now()
	result := &RunResult{
		TargetDir: o.cfg.TargetDir,
		DryRun:    o.cfg.DryRun,
		Scanned:   len(entries),
	}

	o.sendProgress(progress, scanningUpdate(len(entries), o.cfg.TargetDir))

	for i, entry := range entries {
		step, total := i+1, len(entries)
		name := entry.Name()
		src := JoinPath(o.cfg.TargetDir, name)

		info, err := entry.Info()
		if err != nil {
			o.logger.Warn("skipping entry, cannot stat", "path", src, "err", err)
			result.Skipped++
			o.sendProgress(progress, skippedUpdate(step, total, name))
			continue
		}

		if !info.Mode().IsRegular() {
			o.logger.Debug("skipping non-regular file", "path", src)
			result.Skipped++
			o.sendProgress(progress, skippedUpdate(step, total, name))
			continue
		}

		category := o.classifier.Category(ExtensionOf(name))

		categoryDir, err := o.provisionDir(category)
		if err != nil {
			o.logger.Error("failed to provision category directory", "category", category, "err", err)
			result.Failures = append(result.Failures, EntryError{Name: name, Err: err})
			o.sendProgress(progress, failedUpdate(step, total, name, err))
			continue
		}

		dest, err := ResolveUnique(categoryDir, name)
		if err != nil {
			o.logger.Error("failed to resolve destination", "file", name, "err", err)
			result.Failures = append(result.Failures, EntryError{Name: name, Err: err})
			o.sendProgress(progress, failedUpdate(step, total, name, err))
			continue
		}

		rec := MoveRecord{Name: name, Source: src, Dest: dest, Category: category}

		if o.cfg.DryRun {
			o.logger.Infof("[dry-run] move %s -> %s", src, dest)
			result.Moved = append(result.Moved, rec)
			o.sendProgress(progress, plannedUpdate(step, total, rec))
			continue
		}

		if err := os.Rename(src, dest); err != nil {
			// A failed rename leaves the source file in place.
			o.logger.Error("failed to move file", "source", src, "dest", dest, "err", err)
			result.Failures = append(result.Failures, EntryError{Name: name, Err: fmt.Errorf("failed to move %s: %w", name, err)})
			o.sendProgress(progress, failedUpdate(step, total, name, err))
			continue
		}

		o.logger.Infof("moved %s -> %s", src, dest)
		result.Moved = append(result.Moved, rec)
		o.sendProgress(progress, movedUpdate(step, total, rec))
	}

	result.Duration = time.Since(start)
	o.sendProgress(progress, completeUpdate(result))

	return result, nil
}

// Run is the integer-status entry point: it performs one run and folds every
// outcome into a process exit code (0 = success, nonzero = the run failed to
// start or at least one entry failed).
func (o *Organizer) Run(ctx context.Context) int {
	result, err := o.Organize(ctx, nil)
	if err != nil {
		o.logger.Error("file organization failed", "err", err)
		return 1
	}
	return result.ExitCode()
}
