// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for organizing a directory:
//  1. [PlanListView] : Browse the planned moves produced by a dry-run scan
//  2. [ConfirmView] : Confirm before any file is touched
//  3. [RunView] : Monitor real-time progress updates while files move
//  4. [ResultView] : Display counts and any per-file failures
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the organizer engine, providing
// non-blocking status reporting while files are renamed.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
