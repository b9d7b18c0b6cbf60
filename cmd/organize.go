package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tidy/internal/organizer"
	"github.com/desertthunder/tidy/internal/repositories"
	"github.com/desertthunder/tidy/internal/shared"
	"github.com/urfave/cli/v3"
)

// runConfig resolves the effective run configuration for a command: the
// positional DIRECTORY argument wins over --dir, which wins over the config
// file, which falls back to the current directory.
func (r *Runner) runConfig(cmd *cli.Command) organizer.Config {
	cfg := organizer.Config{
		TargetDir: r.config.Organize.TargetDir,
		DryRun:    r.config.Organize.DryRun,
		Verbose:   r.config.Organize.Verbose,
	}

	if dir := cmd.String("dir"); dir != "" {
		cfg.TargetDir = dir
	}
	if dir := cmd.StringArg("directory"); dir != "" {
		cfg.TargetDir = dir
	}
	if cfg.TargetDir == "" {
		cfg.TargetDir = "."
	}

	if cmd.Bool("dry-run") {
		cfg.DryRun = true
	}
	if cmd.Bool("verbose") {
		cfg.Verbose = true
	}

	return cfg
}

// Organize scans the target directory and moves regular files into category folders.
func (r *Runner) Organize(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))
	cfg := r.runConfig(cmd)

	if cfg.Verbose {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.logger.Info("starting organize run", "dir", cfg.TargetDir, "dry_run", cfg.DryRun)

	// Progress channel and goroutine to print per-file lines as they happen
	progressCh := make(chan organizer.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case organizer.Scan:
				r.writePlain("🔍 %s\n", update.Message)
			case organizer.Move:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	engine := organizer.NewOrganizer(organizer.OrganizerOpts{
		Config: cfg,
		Rules:  r.config.Rules,
		Logger: r.logger,
	})

	result, err := engine.Organize(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return cli.Exit(fmt.Sprintf("organize failed: %v", err), 1)
	}

	title := "Organize Complete"
	if result.DryRun {
		title = "Organize Plan (dry-run)"
	}
	r.writePlain("\n")
	r.writePlainHeader(title)
	r.writePlain("Directory: %s\n", result.TargetDir)
	r.writePlain("Moved: %d  Skipped: %d  Failed: %d\n", len(result.Moved), result.Skipped, len(result.Failures))
	r.writePlain("Duration: %s\n", result.Duration)

	if cfg.Verbose && len(result.Moved) > 0 {
		r.writePlain("\nBy category:\n")
		counts := result.ByCategory()
		categories := make([]string, 0, len(counts))
		for category := range counts {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			r.writePlain("  %-14s %d\n", category, counts[category])
		}
	}

	if len(result.Failures) > 0 {
		r.writePlain("\nFailed entries:\n")
		for _, failure := range result.Failures {
			r.writePlain("  - %s: %v\n", failure.Name, failure.Err)
		}
	}

	r.recordHistory(cmd, result)

	if code := result.ExitCode(); code != 0 {
		return cli.Exit(fmt.Sprintf("%d entries failed", len(result.Failures)), code)
	}
	return nil
}

// recordHistory journals a completed run to the history database.
//
// History is best-effort: a disabled or broken database degrades to a warning
// because the files have already been moved.
func (r *Runner) recordHistory(cmd *cli.Command, result *organizer.RunResult) {
	if result.DryRun || cmd.Bool("no-history") {
		return
	}

	db, err := r.openDatabase()
	if err != nil {
		if errors.Is(err, shared.ErrDatabaseDisabled) {
			r.logger.Debug("history recording disabled")
		} else {
			r.logger.Warn("failed to open history database", "err", err)
		}
		return
	}
	defer db.Close()

	run, err := repositories.NewHistoryRecorder(db).Record(result)
	if err != nil {
		r.logger.Warn("failed to record run history", "err", err)
		return
	}

	r.logger.Info("recorded run", "id", run.ID(), "sequence", run.Sequence())
}
