package tui

import "errors"

// ErrMissingEvaluationService is returned when the evaluation service is not provided.
var ErrMissingEvaluationService = errors.New("tui: evaluation service is required")

// ErrMissingSettingsService is returned when the settings service is not provided.
var ErrMissingSettingsService = errors.New("tui: settings service is required")

// ErrMissingReportStore is returned when the report store is not provided.
var ErrMissingReportStore = errors.New("tui: report store is required")

// ErrMissingHighlightService is returned when highlighting is requested
// but no highlight service was provided.
var ErrMissingHighlightService = errors.New("tui: highlight service is required")
