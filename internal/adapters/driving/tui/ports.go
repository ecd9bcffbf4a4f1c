// Package tui provides the interactive terminal user interface for sumdiff.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Evaluation runs summarisation comparisons.
	Evaluation driving.EvaluationService

	// Bench runs the question bank benchmark.
	Bench driving.BenchmarkService

	// Models inspects configured models and their backends.
	Models driving.ModelService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Highlight rewrites reports with unique words marked.
	Highlight driving.HighlightService

	// Actions opens and copies finished reports.
	Actions driving.ActionService

	// Reports lists and reads stored reports.
	Reports driven.ReportStore
}

// Validate ensures the ports every view depends on are set.
// Returns an error when a required port is nil.
func (p *Ports) Validate() error {
	if p.Evaluation == nil {
		return ErrMissingEvaluationService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	if p.Reports == nil {
		return ErrMissingReportStore
	}
	return nil
}
