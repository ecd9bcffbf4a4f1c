package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

func newTestPorts() *Ports {
	return &Ports{
		Evaluation: &MockEvaluationService{Results: []driving.EvaluationResult{sampleResult("Example Page")}},
		Bench:      &MockBenchService{Summary: &driving.BenchSummary{ReportPath: "out/bench.md"}},
		Models:     &MockModelService{},
		Settings:   &MockSettingsService{},
		Highlight:  &MockHighlightService{},
		Actions:    &MockActionService{},
		Reports:    &MockReportStore{Paths: []string{"out/a.html", "out/b.html"}},
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := newTestPorts()
	ports.Evaluation = nil

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	tests := []struct {
		name    string
		view    messages.ViewType
		wantCmd bool
	}{
		{name: "to prompt", view: messages.ViewPrompt, wantCmd: true},
		{name: "to reports", view: messages.ViewReports, wantCmd: true},
		{name: "to models", view: messages.ViewModels, wantCmd: true},
		{name: "to settings", view: messages.ViewSettings, wantCmd: true},
		{name: "to help", view: messages.ViewHelp, wantCmd: false},
		{name: "back to menu", view: messages.ViewMenu, wantCmd: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := NewApp(newTestPorts())
			app.SetDimensions(80, 24)

			_, cmd := app.Update(messages.ViewChanged{View: tt.view})

			assert.Equal(t, tt.view, app.CurrentView())
			if tt.wantCmd {
				assert.NotNil(t, cmd)
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestApp_RunRequested_Prompt(t *testing.T) {
	ports := newTestPorts()
	evaluation := ports.Evaluation.(*MockEvaluationService)
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.RunRequested{Kind: messages.RunPrompt, Prompt: "What is Go?"})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewRun, app.CurrentView())

	// Execute the batched command and collect the completion message.
	completed := runUntil[messages.RunCompleted](t, cmd)
	require.NoError(t, completed.Err)
	require.Len(t, completed.Results, 1)
	assert.Equal(t, []string{"text"}, evaluation.Calls)
	assert.Equal(t, "What is Go?", evaluation.LastText)
}

func TestApp_RunRequested_Email(t *testing.T) {
	ports := newTestPorts()
	evaluation := ports.Evaluation.(*MockEvaluationService)
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.RunRequested{Kind: messages.RunEmail})
	require.NotNil(t, cmd)

	completed := runUntil[messages.RunCompleted](t, cmd)
	require.NoError(t, completed.Err)
	assert.Equal(t, []string{"email"}, evaluation.Calls)
}

func TestApp_RunRequested_Bench(t *testing.T) {
	ports := newTestPorts()
	bench := ports.Bench.(*MockBenchService)
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.RunRequested{Kind: messages.RunBench})
	require.NotNil(t, cmd)

	completed := runUntil[messages.BenchCompleted](t, cmd)
	require.NoError(t, completed.Err)
	require.NotNil(t, completed.Summary)
	assert.Equal(t, "out/bench.md", completed.Summary.ReportPath)
	assert.Equal(t, 1, bench.Runs)
}

func TestApp_RunCompleted_ShowsResults(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.RunRequested{Kind: messages.RunWeb})

	app.Update(messages.RunCompleted{Results: []driving.EvaluationResult{sampleResult("Example Page")}})

	view := app.View()
	assert.Contains(t, view, "Example Page")
	assert.Contains(t, view, "alpha")
}

func TestApp_RunCompleted_ShowsError(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.RunRequested{Kind: messages.RunWeb})

	app.Update(messages.RunCompleted{Err: errors.New("backend down")})

	assert.Contains(t, app.View(), "backend down")
}

func TestApp_OpenReportRequested(t *testing.T) {
	ports := newTestPorts()
	actions := ports.Actions.(*MockActionService)
	app, _ := NewApp(ports)

	_, cmd := app.Update(messages.OpenReportRequested{Path: "out/a.html"})
	require.NotNil(t, cmd)

	msg := cmd()
	opened, ok := msg.(messages.ReportOpened)
	require.True(t, ok)
	assert.NoError(t, opened.Err)
	assert.Equal(t, []string{"out/a.html"}, actions.Opened)
}

func TestApp_HighlightRequested_ReloadsReports(t *testing.T) {
	ports := newTestPorts()
	highlight := ports.Highlight.(*MockHighlightService)
	app, _ := NewApp(ports)

	_, cmd := app.Update(messages.HighlightRequested{Path: "out/a.html"})
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(messages.ReportHighlighted)
	require.True(t, ok)
	assert.Equal(t, []string{"out/a.html"}, highlight.Paths)

	// Feeding the highlight result back triggers a fresh listing.
	_, cmd = app.Update(msg)
	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.ReportsLoaded)
	require.True(t, ok)
	assert.Equal(t, []string{"out/a.html", "out/b.html"}, loaded.Paths)
}

func TestApp_ReportsFlow(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewReports})
	require.NotNil(t, cmd)

	loaded := runUntil[messages.ReportsLoaded](t, cmd)
	app.Update(loaded)

	view := app.View()
	assert.Contains(t, view, "a.html")
	assert.Contains(t, view, "b.html")
}

func TestApp_SettingsFlow(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	require.NotNil(t, cmd)

	loaded := runUntil[messages.SettingsLoaded](t, cmd)
	require.NoError(t, loaded.Err)
	app.Update(loaded)

	view := app.View()
	assert.Contains(t, view, "llama3.2")
	assert.Contains(t, view, "result_columns")
}

func TestApp_HelpView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Help")

	// Esc returns to the menu.
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

// runUntil executes a command tree until a message of type T appears.
// Batched commands are walked; spinner ticks and other messages are
// ignored.
func runUntil[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if want, ok := msg.(T); ok {
			return want
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
		}
	}

	t.Fatalf("command never produced the wanted message type")
	var zero T
	return zero
}
