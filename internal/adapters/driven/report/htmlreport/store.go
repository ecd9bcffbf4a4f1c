package htmlreport

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

const (
	reportPrefix      = "summary_table_"
	highlightedSuffix = ".highlighted"
	timestampFormat   = "20060102_150405"
)

// Markdown reports carry the same timestamp stamp. A stray README.md in
// the output directory is not ours.
var markdownStamp = regexp.MustCompile(`_\d{8}_\d{6}\.md$`)

// Ensure Store implements the ReportStore interface.
var _ driven.ReportStore = (*Store)(nil)

// Store writes reports into a fixed output directory.
type Store struct {
	dir string
}

// NewStore creates a report store rooted at dir. An empty dir means the
// current directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Write stores the document under a timestamped name and returns the
// report metadata.
func (s *Store) Write(document string, highlighted bool) (*domain.Report, error) {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	now := time.Now()
	name := reportPrefix + now.Format(timestampFormat)
	if highlighted {
		name += highlightedSuffix
	}
	name += ".html"

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(document), 0600); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	return &domain.Report{Path: path, Highlighted: highlighted, CreatedAt: now}, nil
}

// WriteMarkdown stores a markdown document under the given name prefix
// and returns its path.
func (s *Store) WriteMarkdown(document, prefix string) (string, error) {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.md", prefix, time.Now().Format(timestampFormat))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(document), 0600); err != nil {
		return "", fmt.Errorf("writing markdown report: %w", err)
	}
	return path, nil
}

// Read returns the stored document at path.
func (s *Store) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: report %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

// Remove deletes the stored report at path.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: report %s", domain.ErrNotFound, path)
		}
		return fmt.Errorf("removing report: %w", err)
	}
	return nil
}

// List returns stored report paths, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report directory: %w", err)
	}

	type report struct {
		path string
		mod  time.Time
	}
	var reports []report
	for _, entry := range entries {
		if entry.IsDir() || !isReportName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, report{
			path: filepath.Join(s.dir, entry.Name()),
			mod:  info.ModTime(),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].mod.Equal(reports[j].mod) {
			return reports[i].mod.After(reports[j].mod)
		}
		return reports[i].path > reports[j].path
	})

	paths := make([]string, 0, len(reports))
	for _, r := range reports {
		paths = append(paths, r.path)
	}
	return paths, nil
}

// Dir returns the directory reports are written to.
func (s *Store) Dir() string {
	return s.dir
}

func isReportName(name string) bool {
	if strings.HasPrefix(name, reportPrefix) && strings.HasSuffix(name, ".html") {
		return true
	}
	return markdownStamp.MatchString(name)
}
