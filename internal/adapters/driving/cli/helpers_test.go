package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// --- Mock implementations ---

// mockEvaluationService implements driving.EvaluationService.
type mockEvaluationService struct {
	results   []driving.EvaluationResult
	err       error
	calls     []string
	lastOpts  driving.EvaluateOptions
	lastURL   string
	lastTitle string
	lastText  string
}

func (m *mockEvaluationService) EvaluateEmail(
	_ context.Context, opts driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	m.calls = append(m.calls, "email")
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockEvaluationService) EvaluateURL(
	_ context.Context, url string, opts driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	m.calls = append(m.calls, "url")
	m.lastOpts = opts
	m.lastURL = url
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return nil, fmt.Errorf("no canned result")
	}
	return &m.results[0], nil
}

func (m *mockEvaluationService) EvaluateURLs(
	_ context.Context, opts driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	m.calls = append(m.calls, "urls")
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockEvaluationService) EvaluateText(
	_ context.Context, title, text string, opts driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	m.calls = append(m.calls, "text")
	m.lastOpts = opts
	m.lastTitle = title
	m.lastText = text
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return nil, fmt.Errorf("no canned result")
	}
	return &m.results[0], nil
}

// mockHighlightService implements driving.HighlightService.
type mockHighlightService struct {
	report   *domain.Report
	err      error
	lastPath string
}

func (m *mockHighlightService) HighlightDocument(doc string) string {
	return doc
}

func (m *mockHighlightService) HighlightFile(path string) (*domain.Report, error) {
	m.lastPath = path
	return m.report, m.err
}

// mockBenchService implements driving.BenchmarkService.
type mockBenchService struct {
	summary    *driving.BenchSummary
	err        error
	categories []string
	catErr     error
	runs       int
	lastOpts   driving.BenchOptions
}

func (m *mockBenchService) Run(_ context.Context, opts driving.BenchOptions) (*driving.BenchSummary, error) {
	m.runs++
	m.lastOpts = opts
	return m.summary, m.err
}

func (m *mockBenchService) Categories() ([]string, error) {
	return m.categories, m.catErr
}

// mockModelService implements driving.ModelService.
type mockModelService struct {
	statuses    []driving.ModelStatus
	statusErr   error
	available   []string
	availErr    error
	preloadErr  error
	validateErr error
	preloads    int
	validates   int
}

func (m *mockModelService) Status(_ context.Context) ([]driving.ModelStatus, error) {
	return m.statuses, m.statusErr
}

func (m *mockModelService) Available(_ context.Context) ([]string, error) {
	return m.available, m.availErr
}

func (m *mockModelService) Preload(_ context.Context) error {
	m.preloads++
	return m.preloadErr
}

func (m *mockModelService) Validate(_ context.Context) error {
	m.validates++
	return m.validateErr
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings    *domain.AppSettings
	err         error
	validateErr error
	values      map[string]string
	valueErr    error
	set         map[string]string
	setErr      error
	storedKey   string
	keyErr      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		defaults := domain.DefaultAppSettings()
		m.settings = &defaults
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = settings
	return m.err
}

func (m *mockSettingsService) SetModels(models []string) error {
	settings, err := m.Get()
	if err != nil {
		return err
	}
	settings.Models = models
	return nil
}

func (m *mockSettingsService) SetTemperature(t float64) error {
	settings, err := m.Get()
	if err != nil {
		return err
	}
	settings.Temperature = t
	return nil
}

func (m *mockSettingsService) SetRepetitions(n int) error {
	settings, err := m.Get()
	if err != nil {
		return err
	}
	settings.Repetitions = n
	return nil
}

func (m *mockSettingsService) SetMailArchive(path string) error {
	settings, err := m.Get()
	if err != nil {
		return err
	}
	settings.Mail.ArchivePath = path
	return nil
}

func (m *mockSettingsService) SetURLsFile(path string) error {
	settings, err := m.Get()
	if err != nil {
		return err
	}
	settings.Web.URLsFile = path
	return nil
}

func (m *mockSettingsService) SetOpenAIKey(key string) error {
	if m.keyErr != nil {
		return m.keyErr
	}
	m.storedKey = key
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Value(key string) (string, error) {
	if m.valueErr != nil {
		return "", m.valueErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return value, nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) Defaults() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	return &defaults
}

func (m *mockSettingsService) Path() string {
	return "/home/test/.sumdiff/config.toml"
}

// mockActionService implements driving.ActionService.
type mockActionService struct {
	opened  []string
	copied  []string
	openErr error
}

func (m *mockActionService) OpenReport(_ context.Context, path string) error {
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = append(m.opened, path)
	return nil
}

func (m *mockActionService) CopyPath(_ context.Context, path string) error {
	m.copied = append(m.copied, path)
	return nil
}

// mockWatchService implements driving.WatchService. Events are sent
// synchronously before the injected error is returned, matching the
// real service's delivery contract.
type mockWatchService struct {
	events []driving.WatchEvent
	err    error
	calls  []string
}

func (m *mockWatchService) WatchMail(ctx context.Context, events chan<- driving.WatchEvent) error {
	m.calls = append(m.calls, "mail")
	return m.deliver(ctx, events)
}

func (m *mockWatchService) WatchURLs(ctx context.Context, events chan<- driving.WatchEvent) error {
	m.calls = append(m.calls, "urls")
	return m.deliver(ctx, events)
}

func (m *mockWatchService) deliver(ctx context.Context, events chan<- driving.WatchEvent) error {
	for _, event := range m.events {
		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.err
}

// mockReportStore implements driven.ReportStore.
type mockReportStore struct {
	dir   string
	docs  map[string]string
	paths []string
}

func (m *mockReportStore) Write(document string, highlighted bool) (*domain.Report, error) {
	path := fmt.Sprintf("%s/summary_table_%d.html", m.dir, len(m.docs)+1)
	if m.docs == nil {
		m.docs = make(map[string]string)
	}
	m.docs[path] = document
	m.paths = append(m.paths, path)
	return &domain.Report{Path: path, Highlighted: highlighted, CreatedAt: time.Now()}, nil
}

func (m *mockReportStore) WriteMarkdown(document, prefix string) (string, error) {
	path := fmt.Sprintf("%s/%s_20250101_000000.md", m.dir, prefix)
	if m.docs == nil {
		m.docs = make(map[string]string)
	}
	m.docs[path] = document
	return path, nil
}

func (m *mockReportStore) Read(path string) (string, error) {
	doc, ok := m.docs[path]
	if !ok {
		return "", fmt.Errorf("%w: report %s", domain.ErrNotFound, path)
	}
	return doc, nil
}

func (m *mockReportStore) Remove(path string) error {
	delete(m.docs, path)
	return nil
}

func (m *mockReportStore) List() ([]string, error) {
	return m.paths, nil
}

func (m *mockReportStore) Dir() string {
	return m.dir
}

// --- Test helpers ---

// testMocks bundles the mocks wired in by setupTestServices.
type testMocks struct {
	evaluation *mockEvaluationService
	highlight  *mockHighlightService
	bench      *mockBenchService
	models     *mockModelService
	settings   *mockSettingsService
	actions    *mockActionService
	watch      *mockWatchService
	reports    *mockReportStore
}

// setupTestServices installs fresh mocks with useful canned results and
// returns them together with a cleanup restoring the previous services.
func setupTestServices() (*testMocks, func()) {
	mocks := &testMocks{
		evaluation: &mockEvaluationService{results: []driving.EvaluationResult{sampleResult("Example Page")}},
		highlight:  &mockHighlightService{report: &domain.Report{Path: "report.highlighted.html", Highlighted: true}},
		bench:      &mockBenchService{summary: &driving.BenchSummary{}},
		models:     &mockModelService{},
		settings:   &mockSettingsService{},
		actions:    &mockActionService{},
		watch:      &mockWatchService{},
		reports:    &mockReportStore{dir: "out"},
	}

	previous := Services{
		Evaluation: evaluationService,
		Highlight:  highlightService,
		Bench:      benchService,
		Models:     modelService,
		Settings:   settingsService,
		Actions:    actionService,
		Watch:      watchService,
		Reports:    reportStore,
	}

	SetServices(&Services{
		Evaluation: mocks.evaluation,
		Highlight:  mocks.highlight,
		Bench:      mocks.bench,
		Models:     mocks.models,
		Settings:   mocks.settings,
		Actions:    mocks.actions,
		Watch:      mocks.watch,
		Reports:    mocks.reports,
	})

	return mocks, func() {
		SetServices(&previous)
	}
}

// sampleResult is a canned finished evaluation for output assertions.
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
					{Content: "Describes the page.", Duration: 1500 * time.Millisecond},
					{Content: "Explains the page.", Duration: 500 * time.Millisecond},
				}},
				{Model: "beta", Err: fmt.Errorf("connection refused")},
			},
			StartedAt:  now.Add(-3 * time.Second),
			FinishedAt: now,
		},
		Report: &domain.Report{
			Path:        "out/summary_table_20250101_000000.highlighted.html",
			Highlighted: true,
			CreatedAt:   now,
		},
	}
}
