// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewPrompt is the direct prompt input view.
	ViewPrompt
	// ViewRun shows a running evaluation and its results.
	ViewRun
	// ViewReports lists stored reports.
	ViewReports
	// ViewModels shows configured models and backend status.
	ViewModels
	// ViewSettings shows the current configuration.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPrompt:
		return "prompt"
	case ViewRun:
		return "run"
	case ViewReports:
		return "reports"
	case ViewModels:
		return "models"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RunKind identifies what an evaluation run takes as input.
type RunKind int

const (
	// RunEmail evaluates newsletter articles from the mail archive.
	RunEmail RunKind = iota
	// RunWeb evaluates every URL in the configured URLs file.
	RunWeb
	// RunPrompt evaluates a direct prompt.
	RunPrompt
	// RunBench runs the question bank benchmark.
	RunBench
)

// String returns the string representation of the run kind.
func (k RunKind) String() string {
	switch k {
	case RunEmail:
		return "email"
	case RunWeb:
		return "web"
	case RunPrompt:
		return "prompt"
	case RunBench:
		return "bench"
	default:
		return "unknown"
	}
}

// RunRequested starts an evaluation of the given kind. Prompt carries
// the text for RunPrompt and is empty otherwise.
type RunRequested struct {
	Kind   RunKind
	Prompt string
}

// RunCompleted carries finished evaluations back to the run view.
type RunCompleted struct {
	Results []driving.EvaluationResult
	Err     error
}

// BenchCompleted carries a finished benchmark back to the run view.
type BenchCompleted struct {
	Summary *driving.BenchSummary
	Err     error
}

// ReportsLoaded carries the stored report paths, newest first.
type ReportsLoaded struct {
	Paths []string
	Err   error
}

// OpenReportRequested asks for the report at Path to be opened in the
// browser.
type OpenReportRequested struct {
	Path string
}

// CopyPathRequested asks for the report path to be copied to the
// clipboard.
type CopyPathRequested struct {
	Path string
}

// HighlightRequested asks for the stored report at Path to be rewritten
// with unique words marked.
type HighlightRequested struct {
	Path string
}

// ReportOpened signals a report was opened in the browser.
type ReportOpened struct {
	Path string
	Err  error
}

// ReportHighlighted signals a stored report was rewritten with
// highlighting.
type ReportHighlighted struct {
	Report *domain.Report
	Err    error
}

// ModelsLoaded carries the configured model statuses.
type ModelsLoaded struct {
	Statuses []driving.ModelStatus
	Err      error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
