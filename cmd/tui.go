package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tidy/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive plan/confirm/organize workflow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))
	cfg := r.runConfig(cmd)

	model := ui.NewModel(ctx, cfg, r.config.Rules, nil)
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(*ui.Model); ok && m.Err() != nil {
		return fmt.Errorf("organize failed: %w", m.Err())
	}

	return nil
}
