package driving

import (
	"context"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// BenchOptions adjusts a benchmark run.
type BenchOptions struct {
	// Categories restricts the run to the named question bank
	// categories. Empty means all categories.
	Categories []string

	// Models overrides the configured model list when non-empty.
	Models []string

	// Limit caps the number of questions per category. Zero means all.
	Limit int
}

// BenchSummary aggregates the results of a benchmark run.
type BenchSummary struct {
	// Results holds every question/model/temperature combination run.
	Results []domain.BenchResult

	// ReportPath is the markdown report written for the run, empty
	// when no report was requested.
	ReportPath string
}

// BenchmarkService scores models against the question bank at fixed
// temperatures, using lexical similarity and a judge model.
type BenchmarkService interface {
	// Run executes the benchmark and writes a markdown report.
	Run(ctx context.Context, opts BenchOptions) (*BenchSummary, error)

	// Categories lists the question bank categories in sorted order.
	Categories() ([]string, error)
}
