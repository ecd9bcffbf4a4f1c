package driven

import (
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// ReportBuilder renders an evaluation into a self-contained HTML document.
type ReportBuilder interface {
	// Build renders the evaluation. The returned document embeds its
	// own styling and needs no external assets.
	Build(eval *domain.Evaluation) (string, error)
}

// ReportStore persists rendered reports.
type ReportStore interface {
	// Write stores the document under a timestamped name and returns
	// the report metadata. Highlighted reports carry a distinguishing
	// name suffix.
	Write(document string, highlighted bool) (*domain.Report, error)

	// WriteMarkdown stores a markdown document under the given name
	// prefix and returns its path.
	WriteMarkdown(document, prefix string) (string, error)

	// Read returns the stored document at path.
	Read(path string) (string, error)

	// Remove deletes the stored report at path.
	Remove(path string) error

	// List returns stored report paths, newest first.
	List() ([]string, error)

	// Dir returns the directory reports are written to.
	Dir() string
}
