package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/highlight"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// highlightedInfix distinguishes a highlighted report from its plain
// original, matching the report store's naming.
const highlightedInfix = ".highlighted"

// Ensure HighlightService implements the interface.
var _ driving.HighlightService = (*HighlightService)(nil)

// HighlightService binds the pure highlight engine to report files.
type HighlightService struct {
	engine *highlight.Highlighter
}

// NewHighlightService creates a highlight service marking uniqueness
// across the given number of result columns.
func NewHighlightService(resultColumns int) *HighlightService {
	return &HighlightService{
		engine: highlight.New(highlight.WithResultColumns(resultColumns)),
	}
}

// HighlightDocument returns the document with words unique to one result
// column wrapped in mark tags. Malformed input comes back unchanged.
func (s *HighlightService) HighlightDocument(doc string) string {
	return s.engine.Highlight(doc)
}

// HighlightFile reads the report at path, writes the highlighted version
// next to it, and removes the original. Paths already carrying the
// highlighted suffix are rewritten in place.
func (s *HighlightService) HighlightFile(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: report %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read report: %w", err)
	}

	logger.Debug("Highlighting %s (%d bytes)", path, len(data))
	marked := s.engine.Highlight(string(data))

	target := highlightedPath(path)
	if err := os.WriteFile(target, []byte(marked), 0600); err != nil {
		return nil, fmt.Errorf("write highlighted report: %w", err)
	}

	if target != path {
		if err := os.Remove(path); err != nil {
			logger.Warn("Could not remove %s: %v", path, err)
		}
	}

	return &domain.Report{
		Path:        target,
		Highlighted: true,
		CreatedAt:   time.Now(),
	}, nil
}

// highlightedPath inserts the highlighted infix before the extension.
func highlightedPath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if strings.HasSuffix(base, highlightedInfix) {
		return path
	}
	return base + highlightedInfix + ext
}
