package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// Column headers written to the log.
const (
	colTitle = "Title"
	colLink  = "Link"
)

// Ensure Log implements the ArticleLog interface.
var _ driven.ArticleLog = (*Log)(nil)

// Log stores articles in a CSV file at a fixed path.
type Log struct {
	path string
}

// NewLog creates an article log backed by the CSV file at path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Write replaces the log with the given articles.
func (l *Log) Write(articles []domain.Article) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening article log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{colTitle, colLink}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, a := range articles {
		if err := w.Write([]string{a.Title, a.Link}); err != nil {
			return fmt.Errorf("writing article row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing article log: %w", err)
	}
	return nil
}

// All returns every logged article in file order. Rows without a link
// are skipped.
func (l *Log) All() ([]domain.Article, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: article log %s", domain.ErrNotFound, l.path)
		}
		return nil, fmt.Errorf("opening article log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	// Logs written by older versions carried extra columns; tolerate
	// ragged rows and resolve columns through the header instead.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading article log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		colIdx[strings.TrimSpace(col)] = i
	}
	titleIdx, ok := colIdx[colTitle]
	if !ok {
		return nil, fmt.Errorf("%w: article log missing %q column", domain.ErrInvalidInput, colTitle)
	}
	linkIdx, ok := colIdx[colLink]
	if !ok {
		return nil, fmt.Errorf("%w: article log missing %q column", domain.ErrInvalidInput, colLink)
	}

	articles := make([]domain.Article, 0, len(records)-1)
	for _, row := range records[1:] {
		a := domain.Article{Title: field(row, titleIdx), Link: field(row, linkIdx)}
		if a.Link == "" {
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
