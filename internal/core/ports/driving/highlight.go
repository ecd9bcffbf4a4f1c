package driving

import "github.com/custodia-labs/sumdiff-cli/internal/core/domain"

// HighlightService rewrites comparison reports so that words unique to
// one result column are visually marked.
type HighlightService interface {
	// HighlightDocument returns the document with unique words marked.
	// Malformed input is returned unchanged.
	HighlightDocument(doc string) string

	// HighlightFile reads the report at path, writes a highlighted
	// sibling, removes the original, and returns the new report.
	HighlightFile(path string) (*domain.Report, error)
}
