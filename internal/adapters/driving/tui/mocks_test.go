package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// MockEvaluationService implements driving.EvaluationService.
type MockEvaluationService struct {
	Results  []driving.EvaluationResult
	Err      error
	Calls    []string
	LastText string
}

func (m *MockEvaluationService) EvaluateEmail(
	_ context.Context, _ driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	m.Calls = append(m.Calls, "email")
	return m.Results, m.Err
}

func (m *MockEvaluationService) EvaluateURL(
	_ context.Context, _ string, _ driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	m.Calls = append(m.Calls, "url")
	if m.Err != nil {
		return nil, m.Err
	}
	return &m.Results[0], nil
}

func (m *MockEvaluationService) EvaluateURLs(
	_ context.Context, _ driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	m.Calls = append(m.Calls, "urls")
	return m.Results, m.Err
}

func (m *MockEvaluationService) EvaluateText(
	_ context.Context, _, text string, _ driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	m.Calls = append(m.Calls, "text")
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	return &m.Results[0], nil
}

// MockBenchService implements driving.BenchmarkService.
type MockBenchService struct {
	Summary *driving.BenchSummary
	Err     error
	Runs    int
}

func (m *MockBenchService) Run(_ context.Context, _ driving.BenchOptions) (*driving.BenchSummary, error) {
	m.Runs++
	return m.Summary, m.Err
}

func (m *MockBenchService) Categories() ([]string, error) {
	return nil, nil
}

// MockModelService implements driving.ModelService.
type MockModelService struct {
	Statuses []driving.ModelStatus
	Err      error
}

func (m *MockModelService) Status(_ context.Context) ([]driving.ModelStatus, error) {
	return m.Statuses, m.Err
}

func (m *MockModelService) Available(_ context.Context) ([]string, error) {
	return nil, m.Err
}

func (m *MockModelService) Preload(_ context.Context) error {
	return m.Err
}

func (m *MockModelService) Validate(_ context.Context) error {
	return m.Err
}

// MockSettingsService implements driving.SettingsService with defaults.
type MockSettingsService struct {
	Settings *domain.AppSettings
	Err      error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Settings == nil {
		defaults := domain.DefaultAppSettings()
		m.Settings = &defaults
	}
	return m.Settings, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Settings = settings
	return m.Err
}

func (m *MockSettingsService) SetModels([]string) error { return m.Err }

func (m *MockSettingsService) SetTemperature(float64) error { return m.Err }

func (m *MockSettingsService) SetRepetitions(int) error { return m.Err }

func (m *MockSettingsService) SetMailArchive(string) error { return m.Err }

func (m *MockSettingsService) SetURLsFile(string) error { return m.Err }

func (m *MockSettingsService) SetOpenAIKey(string) error { return m.Err }

func (m *MockSettingsService) Set(string, string) error { return m.Err }

func (m *MockSettingsService) Value(string) (string, error) {
	return "", m.Err
}

func (m *MockSettingsService) Keys() []string { return nil }

func (m *MockSettingsService) Validate() error { return m.Err }

func (m *MockSettingsService) Defaults() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	return &defaults
}

func (m *MockSettingsService) Path() string {
	return "/home/test/.sumdiff/config.toml"
}

// MockHighlightService implements driving.HighlightService.
type MockHighlightService struct {
	Report *domain.Report
	Err    error
	Paths  []string
}

func (m *MockHighlightService) HighlightDocument(doc string) string {
	return doc
}

func (m *MockHighlightService) HighlightFile(path string) (*domain.Report, error) {
	m.Paths = append(m.Paths, path)
	return m.Report, m.Err
}

// MockActionService implements driving.ActionService.
type MockActionService struct {
	Opened []string
	Copied []string
	Err    error
}

func (m *MockActionService) OpenReport(_ context.Context, path string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Opened = append(m.Opened, path)
	return nil
}

func (m *MockActionService) CopyPath(_ context.Context, path string) error {
	m.Copied = append(m.Copied, path)
	return m.Err
}

// MockReportStore implements driven.ReportStore.
type MockReportStore struct {
	Paths   []string
	Docs    map[string]string
	ListErr error
}

func (m *MockReportStore) Write(document string, highlighted bool) (*domain.Report, error) {
	path := fmt.Sprintf("out/summary_table_%d.html", len(m.Docs)+1)
	if m.Docs == nil {
		m.Docs = make(map[string]string)
	}
	m.Docs[path] = document
	m.Paths = append(m.Paths, path)
	return &domain.Report{Path: path, Highlighted: highlighted, CreatedAt: time.Now()}, nil
}

func (m *MockReportStore) WriteMarkdown(document, prefix string) (string, error) {
	path := fmt.Sprintf("out/%s.md", prefix)
	if m.Docs == nil {
		m.Docs = make(map[string]string)
	}
	m.Docs[path] = document
	return path, nil
}

func (m *MockReportStore) Read(path string) (string, error) {
	doc, ok := m.Docs[path]
	if !ok {
		return "", fmt.Errorf("%w: report %s", domain.ErrNotFound, path)
	}
	return doc, nil
}

func (m *MockReportStore) Remove(path string) error {
	delete(m.Docs, path)
	return nil
}

func (m *MockReportStore) List() ([]string, error) {
	return m.Paths, m.ListErr
}

func (m *MockReportStore) Dir() string {
	return "out"
}

// sampleResult is a canned finished evaluation.
func sampleResult(title string) driving.EvaluationResult {
	now := time.Now()
	return driving.EvaluationResult{
		Evaluation: &domain.Evaluation{
			ID: "eval-1",
			Source: domain.Source{
				Kind:      domain.SourceKindWeb,
				Title:     title,
				Reference: "https://example.com/a",
			},
			Rows: []domain.ModelRuns{
				{Model: "alpha", Runs: []domain.Run{
					{Content: "Describes the page.", Duration: 1200 * time.Millisecond},
				}},
			},
			StartedAt:  now.Add(-2 * time.Second),
			FinishedAt: now,
		},
		Report: &domain.Report{
			Path:        "out/summary_table_20250101_000000.highlighted.html",
			Highlighted: true,
			CreatedAt:   now,
		},
	}
}
