package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// sourceReferenceLimit caps how much of a direct prompt is echoed as the
// report's source line.
const sourceReferenceLimit = 100

// Ensure EvaluationService implements the interface.
var _ driving.EvaluationService = (*EvaluationService)(nil)

// EvaluationService runs summarisation comparisons across models and
// produces highlighted reports.
type EvaluationService struct {
	settings  driving.SettingsService
	prompts   driven.PromptStore
	factory   driven.LLMFactory
	mailbox   driven.MailboxReader
	extractor driven.ArticleExtractor
	articles  driven.ArticleLog
	fetcher   driven.ContentFetcher
	builder   driven.ReportBuilder
	reports   driven.ReportStore
	highlight driving.HighlightService
	actions   driving.ActionService
}

// NewEvaluationService creates a new evaluation service.
// The mailbox, extractor and articles parameters are only needed for the
// email flow and may be nil otherwise.
func NewEvaluationService(
	settings driving.SettingsService,
	prompts driven.PromptStore,
	factory driven.LLMFactory,
	mailbox driven.MailboxReader,
	extractor driven.ArticleExtractor,
	articles driven.ArticleLog,
	fetcher driven.ContentFetcher,
	builder driven.ReportBuilder,
	reports driven.ReportStore,
	highlight driving.HighlightService,
	actions driving.ActionService,
) *EvaluationService {
	return &EvaluationService{
		settings:  settings,
		prompts:   prompts,
		factory:   factory,
		mailbox:   mailbox,
		extractor: extractor,
		articles:  articles,
		fetcher:   fetcher,
		builder:   builder,
		reports:   reports,
		highlight: highlight,
		actions:   actions,
	}
}

// EvaluateEmail evaluates newsletter articles from the configured mail
// archive. The archive is scanned in full, extracted articles are logged
// to the CSV file, and the configured row range is fetched and evaluated.
func (s *EvaluationService) EvaluateEmail(
	ctx context.Context, opts driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	logger.Section("Email Evaluation")

	if s.mailbox == nil || s.extractor == nil || s.articles == nil {
		return nil, fmt.Errorf("email pipeline: %w", domain.ErrInvalidInput)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	set, err := s.prompts.Set(opts.PromptSet)
	if err != nil {
		return nil, fmt.Errorf("load prompt set: %w", err)
	}

	// Index stats are informational; a missing index database does not
	// stop the archive scan.
	if stats, err := s.mailbox.Stats(ctx); err != nil {
		logger.Warn("Mailbox stats unavailable: %v", err)
	} else {
		logger.Info("Mailbox holds %d messages", stats.TotalMessages)
		if stats.Top.Subject != "" {
			logger.Debug("First indexed message: #%d %q (%d bytes)",
				stats.Top.ID, stats.Top.Subject, stats.Top.Size)
		}
	}

	messages, err := s.mailbox.Messages(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("read mail archive: %w", err)
	}
	logger.Info("Scanned %d messages", len(messages))

	unique := s.extractArticles(messages)
	if len(unique) == 0 {
		return nil, fmt.Errorf("extract articles: %w", domain.ErrNoArticles)
	}
	logger.Info("Found %d unique articles", len(unique))

	if err := s.articles.Write(unique); err != nil {
		return nil, fmt.Errorf("write article log: %w", err)
	}
	logger.Debug("Article log written to %s", s.articles.Path())

	subset := articleRange(unique, settings.Mail.StartRow, settings.Mail.NumRecords)
	if len(subset) == 0 {
		return nil, fmt.Errorf("select rows %d-%d of %d articles: %w",
			settings.Mail.StartRow, settings.Mail.StartRow+settings.Mail.NumRecords,
			len(unique), domain.ErrNoArticles)
	}

	results := make([]driving.EvaluationResult, 0, len(subset))
	for i, article := range subset {
		logger.Section(fmt.Sprintf("Article %d/%d: %s", i+1, len(subset), article.Title))

		source, err := s.fetcher.Fetch(ctx, article.Link)
		if err != nil {
			logger.Warn("Skipping article %q, fetch failed: %v", article.Title, err)
			continue
		}

		// The newsletter listing supplies the display title; the source
		// keeps its email origin.
		source.Kind = domain.SourceKindEmail
		source.Title = article.Title

		result, err := s.run(ctx, *source, set, opts)
		if err != nil {
			return results, err
		}
		result.Articles = unique
		results = append(results, *result)
	}

	return results, nil
}

// EvaluateURL fetches the page at url and evaluates it.
func (s *EvaluationService) EvaluateURL(
	ctx context.Context, url string, opts driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	logger.Section("URL Evaluation")

	set, err := s.prompts.Set(opts.PromptSet)
	if err != nil {
		return nil, fmt.Errorf("load prompt set: %w", err)
	}

	source, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	return s.run(ctx, *source, set, opts)
}

// EvaluateURLs evaluates every URL in the configured URLs file, one
// result per line.
func (s *EvaluationService) EvaluateURLs(
	ctx context.Context, opts driving.EvaluateOptions,
) ([]driving.EvaluationResult, error) {
	logger.Section("URL File Evaluation")

	urlsFile := opts.URLsFile
	if urlsFile == "" {
		settings, err := s.settings.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		urlsFile = settings.Web.URLsFile
	}

	urls, err := loadURLs(urlsFile)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("urls file %s: %w", urlsFile, domain.ErrNoArticles)
	}
	logger.Info("Evaluating %d URLs from %s", len(urls), urlsFile)

	set, err := s.prompts.Set(opts.PromptSet)
	if err != nil {
		return nil, fmt.Errorf("load prompt set: %w", err)
	}

	results := make([]driving.EvaluationResult, 0, len(urls))
	for i, url := range urls {
		logger.Section(fmt.Sprintf("URL %d/%d: %s", i+1, len(urls), url))

		source, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			logger.Warn("Skipping %s, fetch failed: %v", url, err)
			continue
		}

		result, err := s.run(ctx, *source, set, opts)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}

	return results, nil
}

// EvaluateText evaluates caller-supplied text under the given title.
// The text itself becomes the user message, so questions are answered
// rather than summarised.
func (s *EvaluationService) EvaluateText(
	ctx context.Context, title, text string, opts driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	logger.Section("Prompt Evaluation")

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("prompt text: %w", domain.ErrEmptyContent)
	}

	set, err := s.prompts.Set(opts.PromptSet)
	if err != nil {
		return nil, fmt.Errorf("load prompt set: %w", err)
	}
	// An empty user template sends the text as the whole user message.
	set.User = ""

	source := domain.Source{
		Kind:      domain.SourceKindPrompt,
		Title:     title,
		Reference: truncateRunes(text, sourceReferenceLimit),
		Content:   text,
	}

	return s.run(ctx, source, set, opts)
}

// run is the shared comparison core: every configured model summarises
// the source, rows are rendered into a report, the report is highlighted
// and optionally opened in the browser.
func (s *EvaluationService) run(
	ctx context.Context, source domain.Source, set driven.PromptSet, opts driving.EvaluateOptions,
) (*driving.EvaluationResult, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	models := opts.Models
	if len(models) == 0 {
		models = settings.Models
	}
	if len(models) == 0 {
		return nil, domain.ErrNoModels
	}

	source = source.Truncated(settings.MaxContentChars)
	logger.Info("Content length: %d characters", len(source.Content))
	logger.Info("Evaluating with %d models", len(models))

	eval := &domain.Evaluation{
		ID:           uuid.NewString(),
		Source:       source,
		SystemPrompt: set.System,
		UserPrompt:   set.User,
		StartedAt:    time.Now(),
	}

	// Rows are assigned by index so the report keeps configured model
	// order regardless of completion order.
	rows := make([]domain.ModelRuns, len(models))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.Concurrency)
	for i, model := range models {
		g.Go(func() error {
			rows[i] = s.evaluateModel(gctx, model, source.Content, set, settings)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate models: %w", err)
	}

	eval.Rows = rows
	eval.FinishedAt = time.Now()
	logger.Timing("Comparison", eval.Duration())

	report, err := s.writeReport(eval)
	if err != nil {
		return nil, err
	}

	if opts.OpenBrowser {
		if err := s.actions.OpenReport(ctx, report.Path); err != nil {
			logger.Warn("Could not open browser: %v", err)
		}
	}

	return &driving.EvaluationResult{Evaluation: eval, Report: report}, nil
}

// evaluateModel runs all repetitions of one model. Failures become cell
// content so the report always shows every configured model.
func (s *EvaluationService) evaluateModel(
	ctx context.Context, model, content string, set driven.PromptSet, settings *domain.AppSettings,
) domain.ModelRuns {
	row := domain.ModelRuns{Model: model}

	svc, err := s.factory.ServiceFor(model)
	if err != nil {
		logger.Warn("No backend for model %s: %v", model, err)
		row.Err = err
		row.Runs = []domain.Run{{Content: fmt.Sprintf("Error: %v", err)}}
		return row
	}

	if err := svc.Preload(ctx); err != nil {
		logger.Warn("Could not pre-load model %s: %v", model, err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: set.System},
		{Role: "user", Content: userMessage(set.User, content)},
	}

	reps := settings.RepetitionsFor(model)
	for i := 0; i < reps; i++ {
		logger.Debug("Model %s run %d/%d", model, i+1, reps)

		start := time.Now()
		completion, err := svc.Chat(ctx, messages, driven.ChatOptions{
			Temperature: settings.Temperature,
		})
		elapsed := time.Since(start)

		if err != nil {
			logger.Warn("Model %s run %d failed: %v", model, i+1, err)
			row.Runs = append(row.Runs, domain.Run{
				Content:  fmt.Sprintf("Error: %v", err),
				Duration: elapsed,
			})
			continue
		}

		row.Runs = append(row.Runs, domain.Run{
			Content:  completion.Content,
			Duration: completion.Duration,
		})
	}

	logger.Timing(fmt.Sprintf("Model %s average", model), row.AverageTime())
	return row
}

// writeReport renders the evaluation, stores it, and swaps it for the
// highlighted version.
func (s *EvaluationService) writeReport(eval *domain.Evaluation) (*domain.Report, error) {
	doc, err := s.builder.Build(eval)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	plain, err := s.reports.Write(doc, false)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	logger.Info("Report written to %s", plain.Path)

	highlighted, err := s.highlight.HighlightFile(plain.Path)
	if err != nil {
		return nil, fmt.Errorf("highlight report: %w", err)
	}
	logger.Info("Highlighted report written to %s", highlighted.Path)

	return highlighted, nil
}

// extractArticles pulls article listings from every HTML message body
// and deduplicates them by URL, preserving first-seen order.
func (s *EvaluationService) extractArticles(messages []driven.MailMessage) []domain.Article {
	var all []domain.Article
	for _, msg := range messages {
		if msg.HTMLBody == "" {
			continue
		}
		articles, err := s.extractor.Extract(msg.HTMLBody)
		if err != nil {
			logger.Debug("Skipping message %q: %v", msg.Subject, err)
			continue
		}
		all = append(all, articles...)
	}

	seen := make(map[string]bool, len(all))
	unique := make([]domain.Article, 0, len(all))
	for _, a := range all {
		if seen[a.Link] {
			continue
		}
		seen[a.Link] = true
		unique = append(unique, a)
	}
	return unique
}

// articleRange slices the article list to the configured evaluation
// window. A start row past the end yields nothing.
func articleRange(articles []domain.Article, start, count int) []domain.Article {
	if start < 0 {
		start = 0
	}
	if start >= len(articles) {
		return nil
	}
	end := len(articles)
	if count > 0 && start+count < end {
		end = start + count
	}
	return articles[start:end]
}

// userMessage joins the user prompt template and the source text the way
// the models expect them.
func userMessage(template, content string) string {
	if template == "" {
		return content
	}
	return template + "\n\n" + content
}

// loadURLs reads a URLs file, one URL per line, skipping blanks.
func loadURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: urls file %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read urls file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
