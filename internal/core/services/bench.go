package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// benchSystemPrompt primes the models under test.
const benchSystemPrompt = "You are a helpful assistant. Answer the question directly and concisely."

// judgeSystemPrompt primes the judge model.
const judgeSystemPrompt = "You are an expert evaluator. Provide objective, consistent scoring."

// judgePromptFormat asks the judge for a parseable verdict. Verbs:
// question, expected answer, actual response, scoring criteria.
const judgePromptFormat = `Evaluate the following AI response against the expected answer.

Question: %s
Expected Answer: %s
AI Response: %s

Scoring Criteria: %s

Please provide:
1. A score from 0-100 (where 100 is perfect match to expected answer)
2. Brief reasoning for the score

Format your response as:
Score: [number]
Reasoning: [explanation]`

// benchReportPrefix names the markdown reports of benchmark runs.
const benchReportPrefix = "bench"

// Ensure BenchmarkService implements the interface.
var _ driving.BenchmarkService = (*BenchmarkService)(nil)

// BenchmarkService scores models against the question bank: every
// question is asked at each configured temperature, answers are compared
// to the expected one lexically and by a judge model.
type BenchmarkService struct {
	settings driving.SettingsService
	prompts  driven.PromptStore
	factory  driven.LLMFactory
	reports  driven.ReportStore
}

// NewBenchmarkService creates a new benchmark service.
func NewBenchmarkService(
	settings driving.SettingsService,
	prompts driven.PromptStore,
	factory driven.LLMFactory,
	reports driven.ReportStore,
) *BenchmarkService {
	return &BenchmarkService{
		settings: settings,
		prompts:  prompts,
		factory:  factory,
		reports:  reports,
	}
}

// Categories lists the question bank categories in sorted order.
func (s *BenchmarkService) Categories() ([]string, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	bank, err := s.bank(settings)
	if err != nil {
		return nil, err
	}
	return bank.Categories(), nil
}

// Run executes the benchmark and writes a markdown report.
func (s *BenchmarkService) Run(ctx context.Context, opts driving.BenchOptions) (*driving.BenchSummary, error) {
	logger.Section("Prompt Benchmark")

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	bank, err := s.bank(settings)
	if err != nil {
		return nil, err
	}
	if len(bank) == 0 {
		return nil, domain.ErrNoQuestions
	}

	categories := opts.Categories
	if len(categories) == 0 {
		categories = bank.Categories()
	}
	for _, category := range categories {
		if _, ok := bank[category]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
		}
	}

	models := opts.Models
	if len(models) == 0 {
		models = settings.Models
	}
	if len(models) == 0 {
		return nil, domain.ErrNoModels
	}

	temperatures := settings.Bench.Temperatures
	if len(temperatures) == 0 {
		temperatures = []float64{0.0, 0.8}
	}

	judge := s.judgeService(ctx, settings)

	var results []domain.BenchResult
	for _, category := range categories {
		questions := bank[category]
		if opts.Limit > 0 && len(questions) > opts.Limit {
			questions = questions[:opts.Limit]
		}
		logger.Section(fmt.Sprintf("Category %s: %d questions", category, len(questions)))

		for _, question := range questions {
			logger.Info("Question %s: %s", question.ID, question.Question)

			for _, model := range models {
				for _, temperature := range temperatures {
					if err := ctx.Err(); err != nil {
						return nil, err
					}

					result := s.askModel(ctx, model, temperature, category, question)
					result.Judge = s.judgeAnswer(ctx, judge, question, result)
					results = append(results, result)
				}
			}
		}
	}

	summary := &driving.BenchSummary{Results: results}
	if len(results) == 0 {
		return summary, nil
	}

	path, err := s.reports.WriteMarkdown(benchReport(results), benchReportPrefix)
	if err != nil {
		return nil, fmt.Errorf("write benchmark report: %w", err)
	}
	logger.Info("Benchmark report written to %s", path)
	summary.ReportPath = path

	return summary, nil
}

// bank returns the question bank, preferring the configured file over
// the prompt store's bundled one.
func (s *BenchmarkService) bank(settings *domain.AppSettings) (domain.QuestionBank, error) {
	if path := settings.Bench.QuestionBank; path != "" {
		return loadQuestionBank(path)
	}
	return s.prompts.QuestionBank()
}

// askModel asks one model one question at one temperature. Backend
// failures are recorded as failed results, never returned.
func (s *BenchmarkService) askModel(
	ctx context.Context, model string, temperature float64, category string, question domain.Question,
) domain.BenchResult {
	result := domain.BenchResult{
		Category:    category,
		Question:    question,
		Model:       model,
		Temperature: temperature,
	}

	svc, err := s.factory.ServiceFor(model)
	if err != nil {
		logger.Warn("No backend for model %s: %v", model, err)
		result.Response = fmt.Sprintf("ERROR: %v", err)
		result.Failed = true
		return result
	}

	logger.Debug("Model %s at temperature %.1f", model, temperature)

	messages := []driven.ChatMessage{
		{Role: "system", Content: benchSystemPrompt},
		{Role: "user", Content: question.Question},
	}

	completion, err := svc.Chat(ctx, messages, driven.ChatOptions{Temperature: temperature})
	if err != nil {
		logger.Warn("Model %s failed on %s: %v", model, question.ID, err)
		result.Response = fmt.Sprintf("ERROR: %v", err)
		result.Failed = true
		return result
	}

	result.Response = completion.Content
	result.Duration = completion.Duration
	result.Similarity = similarity(question.ExpectedAnswer, completion.Content)
	return result
}

// judgeService resolves and pings the judge model's backend. Returns nil
// when the judge is not configured or unreachable; the run then carries
// lexical scores only.
func (s *BenchmarkService) judgeService(ctx context.Context, settings *domain.AppSettings) driven.LLMService {
	model := settings.Bench.JudgeModel
	if model == "" {
		return nil
	}

	svc, err := s.factory.ServiceFor(model)
	if err != nil {
		logger.Warn("Judge model %s unavailable, skipping AI scoring: %v", model, err)
		return nil
	}
	if err := svc.Ping(ctx); err != nil {
		logger.Warn("Judge model %s unreachable, skipping AI scoring: %v", model, err)
		return nil
	}
	return svc
}

// judgeAnswer scores one answer with the judge model. Failed answers are
// scored zero without a call.
func (s *BenchmarkService) judgeAnswer(
	ctx context.Context, judge driven.LLMService, question domain.Question, result domain.BenchResult,
) domain.JudgeVerdict {
	if result.Failed {
		return domain.JudgeVerdict{Reasoning: "Error in response generation"}
	}
	if judge == nil {
		return domain.JudgeVerdict{Reasoning: "Judge model unavailable"}
	}

	prompt := fmt.Sprintf(judgePromptFormat,
		question.Question, question.ExpectedAnswer, result.Response, question.Criteria())
	messages := []driven.ChatMessage{
		{Role: "system", Content: judgeSystemPrompt},
		{Role: "user", Content: prompt},
	}

	// The judge always runs at zero temperature.
	completion, err := judge.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		logger.Warn("Judge failed on %s/%s: %v", result.Model, question.ID, err)
		return domain.JudgeVerdict{Reasoning: fmt.Sprintf("Evaluation error: %v", err)}
	}

	return parseVerdict(completion.Content)
}

// parseVerdict extracts the score and reasoning from a judge reply of
// the requested Score/Reasoning form. When both lines appear more than
// once the last occurrence wins.
func parseVerdict(reply string) domain.JudgeVerdict {
	verdict := domain.JudgeVerdict{Reasoning: "No reasoning provided"}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Score:"); ok {
			verdict.Score = extractScore(rest)
		} else if rest, ok := strings.CutPrefix(line, "Reasoning:"); ok {
			verdict.Reasoning = strings.TrimSpace(rest)
		}
	}

	return verdict
}

// extractScore pulls the digits out of a score line and clamps to 0-100.
// A reply like "85/100" concatenates to 85100; anything past three
// digits is over the cap regardless.
func extractScore(text string) int {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	if digits.Len() > 3 {
		return 100
	}

	n, _ := strconv.Atoi(digits.String())
	if n > 100 {
		return 100
	}
	return n
}

// similarity computes the lexical scores between the expected answer and
// a response, each rounded to three decimals.
func similarity(expected, response string) domain.SimilarityScores {
	expectedLower := strings.ToLower(expected)
	responseLower := strings.ToLower(response)

	words := difflib.NewMatcher(
		strings.Fields(expectedLower),
		strings.Fields(responseLower),
	).Ratio()

	chars := difflib.NewMatcher(
		strings.Split(expectedLower, ""),
		strings.Split(responseLower, ""),
	).Ratio()

	return domain.SimilarityScores{
		WordSimilarity: round3(words),
		CharSimilarity: round3(chars),
		LengthRatio:    round3(lengthRatio(expected, response)),
		ExactMatch:     strings.TrimSpace(expectedLower) == strings.TrimSpace(responseLower),
	}
}

// lengthRatio is min/max of the two text lengths, zero when either text
// is empty.
func lengthRatio(a, b string) float64 {
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer == 0 {
		return 0
	}
	return float64(shorter) / float64(longer)
}

// round3 rounds to three decimal places.
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// loadQuestionBank reads a categorised question bank from a JSON file.
func loadQuestionBank(path string) (domain.QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: question bank %s", domain.ErrNoQuestions, path)
		}
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var bank domain.QuestionBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return bank, nil
}

// questionGroup collects every result of one bank question.
type questionGroup struct {
	category string
	question domain.Question
	results  []domain.BenchResult
}

// groupResults buckets results per question, keeping arrival order.
func groupResults(results []domain.BenchResult) []questionGroup {
	var groups []questionGroup
	index := make(map[string]int)

	for _, r := range results {
		key := r.Category + "\x00" + r.Question.ID
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, questionGroup{category: r.Category, question: r.Question})
		}
		groups[i].results = append(groups[i].results, r)
	}
	return groups
}

// benchReport renders a run as markdown: judge score averages first,
// then per-question detail with every model's answer.
func benchReport(results []domain.BenchResult) string {
	var b strings.Builder

	b.WriteString("# Prompt Benchmark Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	writeBenchSummary(&b, results)
	writeBenchDetails(&b, results)

	return b.String()
}

// writeBenchSummary emits the per-model judge score averages.
func writeBenchSummary(b *strings.Builder, results []domain.BenchResult) {
	type aggregate struct {
		sum, count, min, max int
	}

	var models, labels []string
	seenModel := make(map[string]bool)
	seenLabel := make(map[string]bool)
	scores := make(map[string]*aggregate)

	for _, r := range results {
		if !seenModel[r.Model] {
			seenModel[r.Model] = true
			models = append(models, r.Model)
		}
		label := domain.TemperatureLabel(r.Temperature)
		if !seenLabel[label] {
			seenLabel[label] = true
			labels = append(labels, label)
		}

		key := r.Model + "\x00" + label
		agg, ok := scores[key]
		if !ok {
			agg = &aggregate{min: r.Judge.Score, max: r.Judge.Score}
			scores[key] = agg
		}
		agg.sum += r.Judge.Score
		agg.count++
		if r.Judge.Score < agg.min {
			agg.min = r.Judge.Score
		}
		if r.Judge.Score > agg.max {
			agg.max = r.Judge.Score
		}
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Model | Temperature | Average Score | Min-Max | Answers |\n")
	b.WriteString("|-------|-------------|---------------|---------|--------|\n")

	for _, model := range models {
		for _, label := range labels {
			agg, ok := scores[model+"\x00"+label]
			if !ok {
				continue
			}
			average := math.Round(float64(agg.sum)/float64(agg.count)*10) / 10
			fmt.Fprintf(b, "| %s | %s | %.1f | %d-%d | %d |\n",
				model, label, average, agg.min, agg.max, agg.count)
		}
	}
	b.WriteString("\n")
}

// writeBenchDetails emits one section per category and one block per
// question: scores table, then each answer with the judge's reasoning.
func writeBenchDetails(b *strings.Builder, results []domain.BenchResult) {
	lastCategory := ""

	for _, g := range groupResults(results) {
		if g.category != lastCategory {
			fmt.Fprintf(b, "## %s\n\n", g.category)
			lastCategory = g.category
		}

		fmt.Fprintf(b, "### %s\n\n", g.question.ID)
		fmt.Fprintf(b, "**Question:** %s\n\n", g.question.Question)
		fmt.Fprintf(b, "**Expected:** %s\n\n", g.question.ExpectedAnswer)

		b.WriteString("| Model | Temperature | Judge | Word | Char | Length | Exact | Time |\n")
		b.WriteString("|-------|-------------|-------|------|------|--------|-------|------|\n")
		for _, r := range g.results {
			fmt.Fprintf(b, "| %s | %.1f | %d/100 | %.3f | %.3f | %.3f | %v | %.2fs |\n",
				r.Model, r.Temperature, r.Judge.Score,
				r.Similarity.WordSimilarity, r.Similarity.CharSimilarity,
				r.Similarity.LengthRatio, r.Similarity.ExactMatch,
				r.Duration.Seconds())
		}
		b.WriteString("\n")

		for _, r := range g.results {
			fmt.Fprintf(b, "- **%s @ %.1f**: %s\n", r.Model, r.Temperature, oneLine(r.Response))
			if r.Judge.Reasoning != "" {
				fmt.Fprintf(b, "  - Judge: %s\n", oneLine(r.Judge.Reasoning))
			}
		}
		b.WriteString("\n")
	}
}

// oneLine collapses all whitespace so the text stays on one markdown line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
