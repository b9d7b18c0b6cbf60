package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tidy/internal/shared"
	tu "github.com/desertthunder/tidy/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	config := shared.DefaultConfig()
	config.Database.Path = "" // tests opt into history explicitly
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})
	return runner, output
}

func newTestApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "tidy",
		Commands: r.register(),
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		commands := runner.register()

		want := []string{"organize", "history", "setup", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, name := range want {
			if commands[i].Name != name {
				t.Errorf("command %d = %s, want %s", i, commands[i].Name, name)
			}
		}
	})

	t.Run("writePlain propagates write failures", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Config: shared.DefaultConfig(),
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: &tu.FWriter{},
		})

		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestOrganizeCommand(t *testing.T) {
	t.Run("organizes positional directory", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")
		tu.MustWriteFile(t, filepath.Join(dir, "b.txt"), "")

		runner, output := newTestRunner(t)
		app := newTestApp(runner)

		err := app.Run(context.Background(), []string{"tidy", "organize", dir})
		if err != nil {
			t.Fatalf("organize failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "Images", "a.jpg"))
		tu.AssertFileExists(t, filepath.Join(dir, "Documents", "b.txt"))

		if !strings.Contains(output.String(), "Organize Complete") {
			t.Errorf("missing summary header in output: %s", output.String())
		}
		if !strings.Contains(output.String(), "Moved: 2") {
			t.Errorf("missing move count in output: %s", output.String())
		}
	})

	t.Run("dry run flag prevents mutation", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")

		runner, output := newTestRunner(t)
		app := newTestApp(runner)

		err := app.Run(context.Background(), []string{"tidy", "organize", "--dry-run", dir})
		if err != nil {
			t.Fatalf("organize failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "a.jpg"))
		tu.AssertNotExists(t, filepath.Join(dir, "Images"))

		if !strings.Contains(output.String(), "dry-run") {
			t.Errorf("missing dry-run marker in output: %s", output.String())
		}
	})

	t.Run("records history when database configured", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")

		runner, _ := newTestRunner(t)
		runner.config.Database.Path = filepath.Join(t.TempDir(), "history.db")
		app := newTestApp(runner)

		if err := app.Run(context.Background(), []string{"tidy", "organize", dir}); err != nil {
			t.Fatalf("organize failed: %v", err)
		}

		tu.AssertFileExists(t, runner.config.Database.Path)

		db, err := shared.NewDatabase(runner.config.Database.Path)
		if err != nil {
			t.Fatalf("failed to reopen history database: %v", err)
		}
		defer db.Close()

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
			t.Fatalf("failed to count runs: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 recorded run, got %d", count)
		}
	})
}

func TestRunConfig(t *testing.T) {
	t.Run("falls back to current directory", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		runner.config.Organize.TargetDir = ""

		app := &cli.Command{
			Name: "tidy",
			Commands: []*cli.Command{
				{
					Name: "check",
					Arguments: []cli.Argument{
						&cli.StringArg{Name: "directory"},
					},
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "dir"},
						&cli.BoolFlag{Name: "dry-run"},
						&cli.BoolFlag{Name: "verbose"},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := runner.runConfig(cmd)
						if cfg.TargetDir != "." {
							t.Errorf("TargetDir = %q, want .", cfg.TargetDir)
						}
						return nil
					},
				},
			},
		}

		if err := app.Run(context.Background(), []string{"tidy", "check"}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})

	t.Run("positional argument wins over flag", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		app := &cli.Command{
			Name: "tidy",
			Commands: []*cli.Command{
				{
					Name: "check",
					Arguments: []cli.Argument{
						&cli.StringArg{Name: "directory"},
					},
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "dir"},
						&cli.BoolFlag{Name: "dry-run"},
						&cli.BoolFlag{Name: "verbose"},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := runner.runConfig(cmd)
						if cfg.TargetDir != "/positional" {
							t.Errorf("TargetDir = %q, want /positional", cfg.TargetDir)
						}
						return nil
					},
				},
			},
		}

		if err := app.Run(context.Background(), []string{"tidy", "check", "--dir", "/flagged", "/positional"}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})
}
