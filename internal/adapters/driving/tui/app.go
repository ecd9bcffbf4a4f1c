package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/views/models"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/views/prompt"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/views/reports"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/views/run"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// menuView is the main navigation menu.
	menuView *menu.View

	// promptView is the direct prompt input view.
	promptView *prompt.View

	// runView shows a running evaluation and its results.
	runView *run.View

	// reportsView lists stored reports.
	reportsView *reports.View

	// modelsView shows configured models and backend status.
	modelsView *models.View

	// settingsView shows the current configuration.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         keymap.DefaultKeyMap(),
		menuView:     menu.NewView(s),
		promptView:   prompt.NewView(s),
		runView:      run.NewView(s),
		reportsView:  reports.NewView(s),
		modelsView:   models.NewView(s),
		settingsView: settings.NewView(s),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sumdiff - LLM Summary Comparison"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.promptView.SetDimensions(msg.Width, msg.Height)
		a.runView.SetDimensions(msg.Width, msg.Height)
		a.reportsView.SetDimensions(msg.Width, msg.Height)
		a.modelsView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case messages.RunRequested:
		a.currentView = messages.ViewRun
		return a, tea.Batch(a.runView.Start(msg.Kind), a.startRun(msg))

	case messages.RunCompleted, messages.BenchCompleted:
		a.runView, cmd = a.runView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		return a.changeView(msg.View)

	case messages.OpenReportRequested:
		return a, a.openReport(msg.Path)

	case messages.CopyPathRequested:
		return a, a.copyPath(msg.Path)

	case messages.HighlightRequested:
		return a, a.highlightReport(msg.Path)

	case messages.ReportOpened:
		if msg.Err != nil {
			a.err = msg.Err
		}
		// Both the run and reports views show open confirmations.
		a.runView, _ = a.runView.Update(msg)
		a.reportsView, cmd = a.reportsView.Update(msg)
		return a, cmd

	case messages.ReportHighlighted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.reportsView, _ = a.reportsView.Update(msg)
		return a, a.loadReports()

	case messages.ReportsLoaded:
		a.reportsView, cmd = a.reportsView.Update(msg)
		return a, cmd

	case messages.ModelsLoaded:
		a.modelsView, cmd = a.modelsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (spinner ticks, input blinks) to the
	// active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	case messages.ViewRun:
		a.runView, cmd = a.runView.Update(msg)
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewModels:
		a.modelsView, cmd = a.modelsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view has no dynamic state.
	}

	return a, cmd
}

// updateKeys routes key presses to the active view.
func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
		return a, cmd

	case messages.ViewRun:
		a.runView, cmd = a.runView.Update(msg)
		return a, cmd

	case messages.ViewReports:
		if keymap.Matches(msg.String(), a.keys.Refresh) {
			return a, tea.Batch(a.reportsView.Init(), a.loadReports())
		}
		a.reportsView, cmd = a.reportsView.Update(msg)
		return a, cmd

	case messages.ViewModels:
		if keymap.Matches(msg.String(), a.keys.Refresh) {
			return a, tea.Batch(a.modelsView.Init(), a.loadModels())
		}
		a.modelsView, cmd = a.modelsView.Update(msg)
		return a, cmd

	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		// Esc from help goes to menu
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
	}

	return a, nil
}

// changeView switches views and kicks off the data load the target view
// waits for.
func (a *App) changeView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view

	switch view {
	case messages.ViewPrompt:
		a.promptView.Reset()
		return a, a.promptView.Init()
	case messages.ViewRun:
		return a, a.runView.Init()
	case messages.ViewReports:
		return a, tea.Batch(a.reportsView.Init(), a.loadReports())
	case messages.ViewModels:
		return a, tea.Batch(a.modelsView.Init(), a.loadModels())
	case messages.ViewSettings:
		return a, tea.Batch(a.settingsView.Init(), a.loadSettings())
	case messages.ViewMenu, messages.ViewHelp:
		// No data to load.
	}

	return a, nil
}

// startRun returns the command executing the requested evaluation.
// The command blocks inside Bubbletea's own goroutine, so the UI keeps
// ticking while models run.
func (a *App) startRun(msg messages.RunRequested) tea.Cmd {
	if msg.Kind == messages.RunBench {
		return a.startBench()
	}

	return func() tea.Msg {
		opts := driving.EvaluateOptions{OpenBrowser: a.openBrowserConfigured()}

		switch msg.Kind {
		case messages.RunEmail:
			results, err := a.ports.Evaluation.EvaluateEmail(a.ctx, opts)
			return messages.RunCompleted{Results: results, Err: err}

		case messages.RunWeb:
			results, err := a.ports.Evaluation.EvaluateURLs(a.ctx, opts)
			return messages.RunCompleted{Results: results, Err: err}

		case messages.RunPrompt:
			result, err := a.ports.Evaluation.EvaluateText(a.ctx, "Direct Prompt", msg.Prompt, opts)
			if err != nil {
				return messages.RunCompleted{Err: err}
			}
			return messages.RunCompleted{Results: []driving.EvaluationResult{*result}}

		default:
			return messages.RunCompleted{Err: fmt.Errorf("unknown run kind %v", msg.Kind)}
		}
	}
}

// startBench returns the command executing the benchmark.
func (a *App) startBench() tea.Cmd {
	return func() tea.Msg {
		if a.ports.Bench == nil {
			return messages.BenchCompleted{Err: run.ErrNoBenchService}
		}
		summary, err := a.ports.Bench.Run(a.ctx, driving.BenchOptions{})
		return messages.BenchCompleted{Summary: summary, Err: err}
	}
}

// openBrowserConfigured reads the browser preference, defaulting to off
// when settings cannot be loaded.
func (a *App) openBrowserConfigured() bool {
	settings, err := a.ports.Settings.Get()
	if err != nil {
		return false
	}
	return settings.Output.OpenBrowser
}

// loadReports lists the stored reports.
func (a *App) loadReports() tea.Cmd {
	return func() tea.Msg {
		paths, err := a.ports.Reports.List()
		return messages.ReportsLoaded{Paths: paths, Err: err}
	}
}

// loadModels checks every configured model against its backend.
func (a *App) loadModels() tea.Cmd {
	return func() tea.Msg {
		if a.ports.Models == nil {
			return messages.ModelsLoaded{}
		}
		statuses, err := a.ports.Models.Status(a.ctx)
		return messages.ModelsLoaded{Statuses: statuses, Err: err}
	}
}

// loadSettings loads the application settings.
func (a *App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := a.ports.Settings.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// openReport opens the report in the default browser.
func (a *App) openReport(path string) tea.Cmd {
	return func() tea.Msg {
		if a.ports.Actions == nil {
			return messages.ReportOpened{Path: path}
		}
		err := a.ports.Actions.OpenReport(a.ctx, path)
		return messages.ReportOpened{Path: path, Err: err}
	}
}

// copyPath copies the report path to the clipboard.
func (a *App) copyPath(path string) tea.Cmd {
	return func() tea.Msg {
		if a.ports.Actions == nil {
			return nil
		}
		if err := a.ports.Actions.CopyPath(a.ctx, path); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return nil
	}
}

// highlightReport rewrites a stored report with unique words marked.
func (a *App) highlightReport(path string) tea.Cmd {
	return func() tea.Msg {
		if a.ports.Highlight == nil {
			return messages.ReportHighlighted{Err: ErrMissingHighlightService}
		}
		report, err := a.ports.Highlight.HighlightFile(path)
		return messages.ReportHighlighted{Report: report, Err: err}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewPrompt:
		return a.promptView.View()
	case messages.ViewRun:
		return a.runView.View()
	case messages.ViewReports:
		return a.reportsView.View()
	case messages.ViewModels:
		return a.modelsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Run results:
  o           Open the finished report in the browser
  esc         Back to Menu

Reports:
  j/k, ↑/↓    Navigate reports
  enter/o     Open report
  c           Copy report path
  h           Highlight report
  r           Refresh list

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.promptView.SetDimensions(width, height)
	a.runView.SetDimensions(width, height)
	a.reportsView.SetDimensions(width, height)
	a.modelsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
