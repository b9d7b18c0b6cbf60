package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tidy/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the history database and applies (or rolls back) migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	if r.config.Database.Path == "" {
		return fmt.Errorf("%w: set database.path in the config file", shared.ErrDatabaseDisabled)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		r.writePlainln("✓ Rolled back most recent migration")
		return nil
	}

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	r.logger.Info("database ready", "path", r.config.Database.Path)
	r.writePlainln("✓ Database initialized at %s", r.config.Database.Path)
	return nil
}

// SetupConfig writes the embedded example config to disk as a starting point.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlainln("✓ Config written to %s", path)
	return nil
}
