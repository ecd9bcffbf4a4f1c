package driven

import "github.com/custodia-labs/sumdiff-cli/internal/core/domain"

// ArticleExtractor pulls article listings out of newsletter HTML.
type ArticleExtractor interface {
	// Extract parses the given HTML and returns the articles found,
	// in document order.
	Extract(html string) ([]domain.Article, error)
}

// ArticleLog persists extracted articles as a CSV file. Each write
// replaces the previous contents, mirroring a fresh extraction run.
type ArticleLog interface {
	// Write replaces the log with the given articles.
	Write(articles []domain.Article) error

	// All returns every logged article in file order.
	All() ([]domain.Article, error)

	// Path returns the log file path.
	Path() string
}
