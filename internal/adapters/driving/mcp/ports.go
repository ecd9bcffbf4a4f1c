package mcp

import (
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Evaluation runs summarisation comparisons.
	Evaluation driving.EvaluationService

	// Highlight rewrites comparison documents with unique words marked.
	Highlight driving.HighlightService

	// Reports lists and reads stored reports.
	Reports driven.ReportStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Evaluation == nil {
		return ErrMissingEvaluationService
	}
	if p.Highlight == nil {
		return ErrMissingHighlightService
	}
	// Reports is optional; without it the resource listing is empty.
	return nil
}
