package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tidy/internal/organizer"
	"github.com/desertthunder/tidy/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlanListView ViewState = iota
	ConfirmView
	RunView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	cfg          organizer.Config
	rules        map[string]string
	logger       *log.Logger
	width        int
	height       int
	planList     list.Model
	plan         *organizer.RunResult
	progressChan chan organizer.ProgressUpdate
	progress     organizer.ProgressUpdate
	result       *organizer.RunResult
	err          error
	help         help.Model
	keys         keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "organize"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no"),
		),
		restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.yes, k.no},
		{k.restart, k.quit},
	}
}

// moveItem wraps an [organizer.MoveRecord] to implement list.Item.
type moveItem struct {
	move organizer.MoveRecord
}

func (i moveItem) FilterValue() string { return i.move.Name }
func (i moveItem) Title() string       { return i.move.Name }
func (i moveItem) Description() string {
	return fmt.Sprintf("%s • %s", i.move.Category, i.move.Dest)
}

type planBuiltMsg struct {
	plan *organizer.RunResult
	err  error
}

type progressUpdateMsg organizer.ProgressUpdate

type runCompleteMsg struct {
	result *organizer.RunResult
	err    error
}

// NewModel creates a new TUI model for the given run configuration.
//
// The logger defaults to a discard logger so engine output does not fight the
// terminal for the screen.
func NewModel(ctx context.Context, cfg organizer.Config, rules map[string]string, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Model{
		ctx:      ctx,
		view:     PlanListView,
		cfg:      cfg,
		rules:    rules,
		logger:   logger,
		planList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Plan returns the dry-run plan, once built (used in tests).
func (m *Model) Plan() *organizer.RunResult { return m.plan }

// Result returns the final run result, if the run view completed.
func (m *Model) Result() *organizer.RunResult { return m.result }

// Err returns the first fatal error the TUI hit.
func (m *Model) Err() error { return m.err }

// Init initializes the TUI by building a dry-run plan of the target directory.
func (m *Model) Init() tea.Cmd {
	return m.buildPlan()
}

// buildPlan scans the target with a dry-run engine so nothing is touched yet.
func (m *Model) buildPlan() tea.Cmd {
	return func() tea.Msg {
		cfg := m.cfg
		cfg.DryRun = true

		org := organizer.NewOrganizer(organizer.OrganizerOpts{
			Config: cfg,
			Rules:  m.rules,
			Logger: m.logger,
		})
		plan, err := org.Organize(m.ctx, nil)
		return planBuiltMsg{plan: plan, err: err}
	}
}

// startRun executes the real (non-dry) run and streams progress updates.
func (m *Model) startRun() tea.Cmd {
	m.progressChan = make(chan organizer.ProgressUpdate, 50)

	org := organizer.NewOrganizer(organizer.OrganizerOpts{
		Config: m.cfg,
		Rules:  m.rules,
		Logger: m.logger,
	})

	run := func() tea.Msg {
		result, err := org.Organize(m.ctx, m.progressChan)
		close(m.progressChan)
		return runCompleteMsg{result: result, err: err}
	}

	return tea.Batch(run, m.waitForProgress())
}

// waitForProgress relays the next engine update into the bubbletea loop.
func (m *Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.planList.Width() == 0 {
			m.planList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlanListView:
			return m.handlePlanListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case planBuiltMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.plan = msg.plan
		items := make([]list.Item, len(msg.plan.Moved))
		for i, rec := range msg.plan.Moved {
			items[i] = moveItem{move: rec}
		}
		m.planList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.planList.Title = fmt.Sprintf("Planned moves in %s", m.cfg.TargetDir)
		m.planList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = organizer.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case runCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.result = msg.result
		m.view = ResultView
		return m, nil
	}

	var cmd tea.Cmd
	m.planList, cmd = m.planList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlanListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if m.plan == nil || len(m.plan.Moved) == 0 {
			return m, tea.Quit
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.planList, cmd = m.planList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.view = RunView
		return m, m.startRun()
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = PlanListView
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.restart):
		m.view = PlanListView
		m.result = nil
		return m, m.buildPlan()
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current view state.
func (m *Model) View() string {
	switch m.view {
	case PlanListView:
		return m.viewPlanList()
	case ConfirmView:
		return m.viewConfirm()
	case RunView:
		return m.viewRun()
	case ResultView:
		return m.viewResult()
	}
	return ""
}

func (m *Model) viewPlanList() string {
	if m.plan == nil {
		return styles.help.Render("Scanning directory...")
	}
	if len(m.plan.Moved) == 0 {
		return styles.title.Render("Nothing to organize") + "\n" +
			styles.help.Render("No regular files found at the top level. Press q to quit.")
	}
	return m.planList.View() + "\n" + m.help.View(m.keys)
}

func (m *Model) viewConfirm() string {
	header := styles.title.Render("Confirm")
	body := fmt.Sprintf("Move %d files into category folders under %s?", len(m.plan.Moved), m.cfg.TargetDir)
	prompt := styles.warn.Render("[y] go ahead   [n] back")
	return fmt.Sprintf("%s\n%s\n\n%s", header, body, prompt)
}

func (m *Model) viewRun() string {
	header := styles.title.Render("Organizing...")
	return fmt.Sprintf("%s\n%s", header, m.progress.Message)
}

func (m *Model) viewResult() string {
	header := styles.title.Render("Done")
	line := styles.ok.Render(fmt.Sprintf("✓ %d moved", len(m.result.Moved)))
	if m.result.Skipped > 0 {
		line += styles.warn.Render(fmt.Sprintf("  %d skipped", m.result.Skipped))
	}
	if len(m.result.Failures) > 0 {
		line += styles.err.Render(fmt.Sprintf("  ✗ %d failed", len(m.result.Failures)))
	}

	out := fmt.Sprintf("%s\n%s\n", header, line)
	for _, failure := range m.result.Failures {
		out += styles.err.Render(fmt.Sprintf("  - %s: %v", failure.Name, failure.Err)) + "\n"
	}
	out += "\n" + styles.help.Render("[r] rescan   [q] quit")
	return out
}
