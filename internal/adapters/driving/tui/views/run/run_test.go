package run

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

func finishedResult() driving.EvaluationResult {
	return driving.EvaluationResult{
		Evaluation: &domain.Evaluation{
			Source: domain.Source{Title: "Example Article"},
			Rows: []domain.ModelRuns{
				{Model: "llama3.2", Runs: []domain.Run{
					{Content: "Describes things.", Duration: 2 * time.Second},
				}},
			},
		},
		Report: &domain.Report{Path: "out/report.highlighted.html", Highlighted: true},
	}
}

func TestView_StartEntersRunningState(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	cmd := v.Start(messages.RunWeb)

	assert.NotNil(t, cmd)
	assert.True(t, v.Running())
	assert.Contains(t, v.View(), "Running models")
}

func TestView_RunCompleted(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Start(messages.RunWeb)

	v, _ = v.Update(messages.RunCompleted{Results: []driving.EvaluationResult{finishedResult()}})

	assert.False(t, v.Running())
	view := v.View()
	assert.Contains(t, view, "Example Article")
	assert.Contains(t, view, "llama3.2")
	assert.Contains(t, view, "out/report.highlighted.html")
}

func TestView_RunCompleted_Error(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Start(messages.RunEmail)

	v, _ = v.Update(messages.RunCompleted{Err: errors.New("no archive configured")})

	assert.False(t, v.Running())
	assert.Contains(t, v.View(), "no archive configured")
}

func TestView_BenchCompleted(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Start(messages.RunBench)

	v, _ = v.Update(messages.BenchCompleted{Summary: &driving.BenchSummary{
		Results:    []domain.BenchResult{{Model: "llama3.2"}, {Model: "mistral", Failed: true}},
		ReportPath: "out/bench_20250101_000000.md",
	}})

	view := v.View()
	assert.Contains(t, view, "2 question/model/temperature runs")
	assert.Contains(t, view, "1 runs failed")
	assert.Contains(t, view, "bench_20250101_000000.md")
}

func TestView_OpenKeyEmitsRequest(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Start(messages.RunWeb)
	v, _ = v.Update(messages.RunCompleted{Results: []driving.EvaluationResult{finishedResult()}})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	require.NotNil(t, cmd)

	msg := cmd()
	requested, ok := msg.(messages.OpenReportRequested)
	require.True(t, ok)
	assert.Equal(t, "out/report.highlighted.html", requested.Path)
}

func TestView_OpenKeyIgnoredWhileRunning(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Start(messages.RunWeb)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})

	assert.Nil(t, cmd)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.Start(messages.RunWeb)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}
