package organizer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/desertthunder/tidy/internal/shared"
	th "github.com/desertthunder/tidy/internal/testing"
)

func newTestOrganizer(cfg Config) *Organizer {
	return NewOrganizer(OrganizerOpts{
		Config: cfg,
		Logger: shared.NewLogger(io.Discard),
	})
}

func TestOrganize(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "jpeg bytes")
		th.MustWriteFile(t, filepath.Join(dir, "b.txt"), "text bytes")
		th.MustWriteFile(t, filepath.Join(dir, "c"), "no extension")
		th.MustMkdir(t, filepath.Join(dir, "notes"))
		th.MustWriteFile(t, filepath.Join(dir, "notes", "inner.txt"), "untouched")

		o := newTestOrganizer(Config{TargetDir: dir})
		result, err := o.Organize(context.Background(), nil)
		if err != nil {
			t.Fatalf("Organize failed: %v", err)
		}

		if result.ExitCode() != 0 {
			t.Errorf("expected exit code 0, got %d (failures: %v)", result.ExitCode(), result.Failures)
		}
		if len(result.Moved) != 3 {
			t.Errorf("expected 3 moves, got %d", len(result.Moved))
		}

		th.AssertFileExists(t, filepath.Join(dir, "Images", "a.jpg"))
		th.AssertFileExists(t, filepath.Join(dir, "Documents", "b.txt"))
		th.AssertFileExists(t, filepath.Join(dir, "Other", "c"))

		// Subdirectories are neither moved nor entered
		th.AssertDirExists(t, filepath.Join(dir, "notes"))
		th.AssertFileExists(t, filepath.Join(dir, "notes", "inner.txt"))
		th.AssertNotExists(t, filepath.Join(dir, "a.jpg"))

		if got := th.MustReadFile(t, filepath.Join(dir, "Images", "a.jpg")); got != "jpeg bytes" {
			t.Errorf("moved file contents changed: %q", got)
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")
		th.MustWriteFile(t, filepath.Join(dir, "b.txt"), "")

		o := newTestOrganizer(Config{TargetDir: dir})
		first, err := o.Organize(context.Background(), nil)
		if err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if len(first.Moved) != 2 {
			t.Fatalf("first run moved %d files, want 2", len(first.Moved))
		}

		second, err := o.Organize(context.Background(), nil)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		if len(second.Moved) != 0 {
			t.Errorf("second run moved %d files, want 0", len(second.Moved))
		}
		if second.ExitCode() != 0 {
			t.Errorf("second run exit code = %d, want 0", second.ExitCode())
		}
		// Category directories remain where they were
		th.AssertFileExists(t, filepath.Join(dir, "Images", "a.jpg"))
	})

	t.Run("dry run leaves filesystem untouched", func(t *testing.T) {
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "payload")
		th.MustWriteFile(t, filepath.Join(dir, "b.txt"), "payload")

		before := th.Snapshot(t, dir)

		o := newTestOrganizer(Config{TargetDir: dir, DryRun: true})
		result, err := o.Organize(context.Background(), nil)
		if err != nil {
			t.Fatalf("Organize failed: %v", err)
		}

		after := th.Snapshot(t, dir)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("dry run mutated the filesystem: before=%v after=%v", before, after)
		}

		// Every planned move is still reported
		if len(result.Moved) != 2 {
			t.Errorf("expected 2 planned moves, got %d", len(result.Moved))
		}
		if !result.DryRun {
			t.Error("result should be flagged as dry-run")
		}
	})

	t.Run("collision suffix across runs", func(t *testing.T) {
		dir := t.TempDir()
		th.MustMkdir(t, filepath.Join(dir, "Documents"))
		th.MustWriteFile(t, filepath.Join(dir, "Documents", "report.txt"), "existing")
		th.MustWriteFile(t, filepath.Join(dir, "report.txt"), "incoming")

		o := newTestOrganizer(Config{TargetDir: dir})
		result, err := o.Organize(context.Background(), nil)
		if err != nil {
			t.Fatalf("Organize failed: %v", err)
		}
		if result.ExitCode() != 0 {
			t.Fatalf("unexpected failures: %v", result.Failures)
		}

		th.AssertFileExists(t, filepath.Join(dir, "Documents", "report.txt"))
		th.AssertFileExists(t, filepath.Join(dir, "Documents", "report_1.txt"))
		if got := th.MustReadFile(t, filepath.Join(dir, "Documents", "report_1.txt")); got != "incoming" {
			t.Errorf("suffixed file has wrong contents: %q", got)
		}
	})

	t.Run("failure isolation", func(t *testing.T) {
		dir := t.TempDir()
		// A symlink squatting on the Images category path fails provisioning
		// for a.jpg but must not stop b.txt from being filed. A symlink is
		// not a regular file, so the squatter itself is skipped, not moved.
		squatTarget := filepath.Join(t.TempDir(), "target")
		th.MustWriteFile(t, squatTarget, "squatter")
		if err := os.Symlink(squatTarget, filepath.Join(dir, "Images")); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}
		th.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")
		th.MustWriteFile(t, filepath.Join(dir, "b.txt"), "")

		o := newTestOrganizer(Config{TargetDir: dir})
		result, err := o.Organize(context.Background(), nil)
		if err != nil {
			t.Fatalf("Organize failed: %v", err)
		}

		if result.ExitCode() == 0 {
			t.Error("expected nonzero exit code")
		}
		if len(result.Failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(result.Failures))
		}
		if result.Failures[0].Name != "a.jpg" {
			t.Errorf("failure recorded for %s, want a.jpg", result.Failures[0].Name)
		}
		if !errors.Is(result.Failures[0].Err, shared.ErrNotADirectory) {
			t.Errorf("expected ErrNotADirectory, got %v", result.Failures[0].Err)
		}

		th.AssertFileExists(t, filepath.Join(dir, "Documents", "b.txt"))
		th.AssertFileExists(t, filepath.Join(dir, "a.jpg"))
	})

	t.Run("config rules override classification", func(t *testing.T) {
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "photo.webp"), "")

		o := NewOrganizer(OrganizerOpts{
			Config: Config{TargetDir: dir},
			Rules:  map[string]string{"webp": "Images"},
			Logger: shared.NewLogger(io.Discard),
		})
		if _, err := o.Organize(context.Background(), nil); err != nil {
			t.Fatalf("Organize failed: %v", err)
		}

		th.AssertFileExists(t, filepath.Join(dir, "Images", "photo.webp"))
	})

	t.Run("progress updates flow", func(t *testing.T) {
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")

		o := newTestOrganizer(Config{TargetDir: dir})
		progress := make(chan ProgressUpdate, 16)
		if _, err := o.Organize(context.Background(), progress); err != nil {
			t.Fatalf("Organize failed: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 3 {
			t.Fatalf("expected scan, move, and complete updates, got %v", phases)
		}
		if phases[0] != Scan {
			t.Errorf("first update phase = %v, want Scan", phases[0])
		}
		if phases[len(phases)-1] != Complete {
			t.Errorf("last update phase = %v, want Complete", phases[len(phases)-1])
		}
	})
}

func TestOrganizeValidation(t *testing.T) {
	t.Run("empty target dir", func(t *testing.T) {
		o := newTestOrganizer(Config{})
		_, err := o.Organize(context.Background(), nil)
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("missing target dir", func(t *testing.T) {
		o := newTestOrganizer(Config{TargetDir: filepath.Join(t.TempDir(), "nope")})
		_, err := o.Organize(context.Background(), nil)
		if err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("target is a file", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "file.txt")
		th.MustWriteFile(t, target, "")

		o := newTestOrganizer(Config{TargetDir: target})
		_, err := o.Organize(context.Background(), nil)
		if !errors.Is(err, shared.ErrNotADirectory) {
			t.Errorf("expected ErrNotADirectory, got %v", err)
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("status zero on success", func(t *testing.T) {
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")

		o := newTestOrganizer(Config{TargetDir: dir})
		if status := o.Run(context.Background()); status != 0 {
			t.Errorf("Run() = %d, want 0", status)
		}
	})

	t.Run("status nonzero when run cannot start", func(t *testing.T) {
		o := newTestOrganizer(Config{TargetDir: filepath.Join(t.TempDir(), "nope")})
		if status := o.Run(context.Background()); status == 0 {
			t.Error("Run() = 0, want nonzero")
		}
	})
}

func TestRunResult(t *testing.T) {
	t.Run("ByCategory", func(t *testing.T) {
		result := &RunResult{
			Moved: []MoveRecord{
				{Name: "a.jpg", Category: "Images"},
				{Name: "b.png", Category: "Images"},
				{Name: "c.txt", Category: "Documents"},
			},
		}

		counts := result.ByCategory()
		if counts["Images"] != 2 || counts["Documents"] != 1 {
			t.Errorf("unexpected counts: %v", counts)
		}
	})
}
