package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tidy/internal/formatter"
	"github.com/desertthunder/tidy/internal/repositories"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recent organize runs, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	db, err := r.openDatabase()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := repositories.NewRunRepository(db).List(map[string]any{
		"limit": cmd.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		r.writePlain("No runs recorded yet.\n")
		return nil
	}

	r.writePlainHeader("Run History")
	for _, run := range runs {
		r.writePlain("#%-4d %s  moved=%d skipped=%d failed=%d  (%s)\n",
			run.Sequence(),
			run.CreatedAt().Format("2006-01-02 15:04:05"),
			run.MovedCount(),
			run.SkippedCount(),
			run.FailedCount(),
			run.TargetDir(),
		)
		r.writePlain("      id: %s\n", run.ID())
	}

	return nil
}

// HistoryShow prints every move of a single run.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))
	runID := cmd.String("id")

	db, err := r.openDatabase()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	run, err := repositories.NewRunRepository(db).Get(runID)
	if err != nil {
		return fmt.Errorf("failed to fetch run: %w", err)
	}

	moves, err := repositories.NewMoveRepository(db).ListByRun(runID)
	if err != nil {
		return fmt.Errorf("failed to fetch moves: %w", err)
	}

	r.writePlainHeader(fmt.Sprintf("Run #%d (%s)", run.Sequence(), run.TargetDir()))
	r.writePlain("Date: %s\n", run.CreatedAt().Format("2006-01-02 15:04:05"))
	r.writePlain("Moved: %d  Skipped: %d  Failed: %d  Duration: %s\n\n", run.MovedCount(), run.SkippedCount(), run.FailedCount(), run.Duration())

	for _, move := range moves {
		r.writePlain("%s -> %s [%s]\n", move.SourcePath(), move.DestPath(), move.Category())
	}

	return nil
}

// HistoryExport writes a run report in the requested format.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))
	runID := cmd.String("id")
	format := cmd.String("format")
	output := cmd.String("output")

	db, err := r.openDatabase()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	run, err := repositories.NewRunRepository(db).Get(runID)
	if err != nil {
		return fmt.Errorf("failed to fetch run: %w", err)
	}

	moves, err := repositories.NewMoveRepository(db).ListByRun(runID)
	if err != nil {
		return fmt.Errorf("failed to fetch moves: %w", err)
	}

	report := &formatter.RunReport{Run: run, Moves: moves}
	if err := formatter.WriteReport(report, format, output); err != nil {
		return err
	}

	if output != "" {
		r.logger.Info("report written", "path", output, "format", format)
		r.writePlainln("✓ Report written to %s", output)
	}

	return nil
}
