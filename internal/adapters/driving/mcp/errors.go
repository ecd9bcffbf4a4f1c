package mcp

import "errors"

// ErrMissingEvaluationService is returned when the evaluation service is not provided.
var ErrMissingEvaluationService = errors.New("mcp: evaluation service is required")

// ErrMissingHighlightService is returned when the highlight service is not provided.
var ErrMissingHighlightService = errors.New("mcp: highlight service is required")
