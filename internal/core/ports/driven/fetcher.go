package driven

import (
	"context"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// ContentFetcher retrieves readable page content from the web.
type ContentFetcher interface {
	// Fetch downloads the page at url and returns it as a source with
	// the page title and readable text filled in.
	Fetch(ctx context.Context, url string) (*domain.Source, error)
}
