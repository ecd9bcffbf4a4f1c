// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import (
	"context"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// EvaluationResult pairs a finished evaluation with its report on disk.
type EvaluationResult struct {
	// Evaluation holds the runs for every configured model.
	Evaluation *domain.Evaluation

	// Report is the highlighted HTML report written for the evaluation.
	Report *domain.Report

	// Articles are the newsletter articles found in the source, when
	// the source was an email. Nil otherwise.
	Articles []domain.Article
}

// EvaluateOptions adjusts a single evaluation run.
type EvaluateOptions struct {
	// PromptSet selects a named prompt set. Empty means the default.
	PromptSet string

	// Models overrides the configured model list when non-empty.
	Models []string

	// URLsFile overrides the configured URLs file when non-empty.
	// Only EvaluateURLs consults it.
	URLsFile string

	// OpenBrowser opens the finished report in the default browser.
	OpenBrowser bool
}

// EvaluationService runs summarisation comparisons across models and
// produces highlighted reports.
type EvaluationService interface {
	// EvaluateEmail evaluates messages from the configured mail
	// archive, one result per message.
	EvaluateEmail(ctx context.Context, opts EvaluateOptions) ([]EvaluationResult, error)

	// EvaluateURL fetches the page at url and evaluates it.
	EvaluateURL(ctx context.Context, url string, opts EvaluateOptions) (*EvaluationResult, error)

	// EvaluateURLs evaluates every URL in the configured URLs file,
	// one result per line.
	EvaluateURLs(ctx context.Context, opts EvaluateOptions) ([]EvaluationResult, error)

	// EvaluateText evaluates caller-supplied text under the given title.
	EvaluateText(ctx context.Context, title, text string, opts EvaluateOptions) (*EvaluationResult, error)
}
