package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// mockEvaluationService is a mock implementation of driving.EvaluationService.
type mockEvaluationService struct {
	result  *driving.EvaluationResult
	results []driving.EvaluationResult
	lastURL string
	err     error
}

func (m *mockEvaluationService) EvaluateEmail(
	_ context.Context,
	_ driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	return m.results, m.err
}

func (m *mockEvaluationService) EvaluateURL(
	_ context.Context,
	url string,
	_ driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	m.lastURL = url
	return m.result, m.err
}

func (m *mockEvaluationService) EvaluateURLs(
	_ context.Context,
	_ driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	return m.results, m.err
}

func (m *mockEvaluationService) EvaluateText(
	_ context.Context,
	_, _ string,
	_ driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	return m.result, m.err
}

// mockHighlightService is a mock implementation of driving.HighlightService.
type mockHighlightService struct {
	report *domain.Report
	err    error
}

func (m *mockHighlightService) HighlightDocument(doc string) string {
	return "<mark>" + doc + "</mark>"
}

func (m *mockHighlightService) HighlightFile(_ string) (*domain.Report, error) {
	return m.report, m.err
}

// mockReportStore is a mock implementation of driven.ReportStore.
type mockReportStore struct {
	paths []string
	docs  map[string]string
	err   error
}

func (m *mockReportStore) Write(_ string, highlighted bool) (*domain.Report, error) {
	return &domain.Report{Path: "report.html", Highlighted: highlighted}, m.err
}

func (m *mockReportStore) WriteMarkdown(_, prefix string) (string, error) {
	return prefix + ".md", m.err
}

func (m *mockReportStore) Read(path string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	doc, ok := m.docs[path]
	if !ok {
		return "", fmt.Errorf("no document at %s", path)
	}
	return doc, nil
}

func (m *mockReportStore) Remove(_ string) error {
	return m.err
}

func (m *mockReportStore) List() ([]string, error) {
	return m.paths, m.err
}

func (m *mockReportStore) Dir() string {
	if len(m.paths) == 0 {
		return "."
	}
	return filepath.Dir(m.paths[0])
}
