package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyModels          = "evaluation.models"
	keyOpenAIModels    = "evaluation.openai_models"
	keyTemperature     = "evaluation.temperature"
	keyRepetitions     = "evaluation.repetitions"
	keyConcurrency     = "evaluation.concurrency"
	keyMaxContentChars = "evaluation.max_content_chars"
	keySystemPrompt    = "evaluation.system_prompt"
	keyUserPrompt      = "evaluation.user_prompt"
	keyMailArchive     = "mail.archive"
	keyMailIndex       = "mail.index"
	keyMailStartRow    = "mail.start_row"
	keyMailNumRecords  = "mail.num_records"
	keyURLsFile        = "web.urls_file"
	keyWebTimeout      = "web.timeout_seconds"
	keyWebRate         = "web.requests_per_second"
	keyResultColumns   = "report.result_columns"
	keyReportDir       = "report.directory"
	keyArticlesCSV     = "report.articles_csv"
	keyOpenBrowser     = "report.open_browser"
	keyOllamaBaseURL   = "ollama.base_url"
	keyOllamaKeepAlive = "ollama.keep_alive"
	keyOpenAIBaseURL   = "openai.base_url"
	keyOpenAIAPIKey    = "openai.api_key"
	keyQuestionBank    = "bench.question_bank"
	keyBenchTemps      = "bench.temperatures"
	keyJudgeModel      = "bench.judge_model"
)

// envOpenAIKey is consulted when no API key is stored.
const envOpenAIKey = "OPENAI_API_KEY"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service. The validator may
// be nil, in which case key changes are saved unchecked.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. Keys absent from the
// store fall back to the built-in defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Models:          s.getStringSlice(keyModels, defaults.Models),
		OpenAIModels:    s.getStringSlice(keyOpenAIModels, defaults.OpenAIModels),
		Temperature:     s.getFloat(keyTemperature, defaults.Temperature),
		Repetitions:     s.getInt(keyRepetitions, defaults.Repetitions),
		ResultColumns:   s.getInt(keyResultColumns, defaults.ResultColumns),
		Concurrency:     s.getInt(keyConcurrency, defaults.Concurrency),
		MaxContentChars: s.getInt(keyMaxContentChars, defaults.MaxContentChars),
		SystemPrompt:    s.getString(keySystemPrompt, defaults.SystemPrompt),
		UserPrompt:      s.getString(keyUserPrompt, defaults.UserPrompt),
		Mail: domain.MailSettings{
			// No defaults: an unset archive means the email flow is
			// not configured on this machine.
			ArchivePath: s.configStore.GetString(keyMailArchive),
			IndexPath:   s.configStore.GetString(keyMailIndex),
			StartRow:    s.getInt(keyMailStartRow, defaults.Mail.StartRow),
			NumRecords:  s.getInt(keyMailNumRecords, defaults.Mail.NumRecords),
		},
		Web: domain.WebSettings{
			URLsFile:          s.getString(keyURLsFile, defaults.Web.URLsFile),
			TimeoutSeconds:    s.getInt(keyWebTimeout, defaults.Web.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(keyWebRate, defaults.Web.RequestsPerSecond),
		},
		Output: domain.OutputSettings{
			Directory:   s.getString(keyReportDir, defaults.Output.Directory),
			ArticlesCSV: s.getString(keyArticlesCSV, defaults.Output.ArticlesCSV),
			OpenBrowser: s.getBool(keyOpenBrowser, defaults.Output.OpenBrowser),
		},
		Ollama: domain.OllamaSettings{
			BaseURL:   s.getString(keyOllamaBaseURL, defaults.Ollama.BaseURL),
			KeepAlive: s.getString(keyOllamaKeepAlive, defaults.Ollama.KeepAlive),
		},
		OpenAI: domain.OpenAISettings{
			BaseURL: s.getString(keyOpenAIBaseURL, defaults.OpenAI.BaseURL),
			APIKey:  s.configStore.GetString(keyOpenAIAPIKey),
		},
		Bench: domain.BenchSettings{
			QuestionBank: s.configStore.GetString(keyQuestionBank),
			Temperatures: s.getFloatSlice(keyBenchTemps, defaults.Bench.Temperatures),
			JudgeModel:   s.getString(keyJudgeModel, defaults.Bench.JudgeModel),
		},
	}

	if settings.OpenAI.APIKey == "" {
		settings.OpenAI.APIKey = os.Getenv(envOpenAIKey)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("settings: %w", domain.ErrInvalidInput)
	}

	values := map[string]any{
		keyModels:          settings.Models,
		keyOpenAIModels:    settings.OpenAIModels,
		keyTemperature:     settings.Temperature,
		keyRepetitions:     settings.Repetitions,
		keyResultColumns:   settings.ResultColumns,
		keyConcurrency:     settings.Concurrency,
		keyMaxContentChars: settings.MaxContentChars,
		keySystemPrompt:    settings.SystemPrompt,
		keyUserPrompt:      settings.UserPrompt,
		keyMailArchive:     settings.Mail.ArchivePath,
		keyMailIndex:       settings.Mail.IndexPath,
		keyMailStartRow:    settings.Mail.StartRow,
		keyMailNumRecords:  settings.Mail.NumRecords,
		keyURLsFile:        settings.Web.URLsFile,
		keyWebTimeout:      settings.Web.TimeoutSeconds,
		keyWebRate:         settings.Web.RequestsPerSecond,
		keyReportDir:       settings.Output.Directory,
		keyArticlesCSV:     settings.Output.ArticlesCSV,
		keyOpenBrowser:     settings.Output.OpenBrowser,
		keyOllamaBaseURL:   settings.Ollama.BaseURL,
		keyOllamaKeepAlive: settings.Ollama.KeepAlive,
		keyOpenAIBaseURL:   settings.OpenAI.BaseURL,
		keyQuestionBank:    settings.Bench.QuestionBank,
		keyBenchTemps:      settings.Bench.Temperatures,
		keyJudgeModel:      settings.Bench.JudgeModel,
	}

	// Keys are written in a fixed order so failures are reproducible.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	// The key may have come from the environment; never write an empty
	// value over a stored one.
	if settings.OpenAI.APIKey != "" {
		if err := s.configStore.Set(keyOpenAIAPIKey, settings.OpenAI.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyOpenAIAPIKey, err)
		}
	}

	return nil
}

// SetModels updates the evaluated model list.
func (s *SettingsService) SetModels(models []string) error {
	cleaned := make([]string, 0, len(models))
	for _, model := range models {
		if model = strings.TrimSpace(model); model != "" {
			cleaned = append(cleaned, model)
		}
	}
	if len(cleaned) == 0 {
		return domain.ErrNoModels
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Models = cleaned
	return s.Save(settings)
}

// SetTemperature updates the sampling temperature.
func (s *SettingsService) SetTemperature(t float64) error {
	if t < 0 || t > 2 {
		return fmt.Errorf("temperature %.2f out of range: %w", t, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Temperature = t
	return s.Save(settings)
}

// SetRepetitions updates the runs-per-model count.
func (s *SettingsService) SetRepetitions(n int) error {
	if n < 1 {
		return fmt.Errorf("repetitions %d out of range: %w", n, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Repetitions = n
	return s.Save(settings)
}

// SetMailArchive updates the mail archive path.
func (s *SettingsService) SetMailArchive(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("mail archive path: %w", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Mail.ArchivePath = path
	return s.Save(settings)
}

// SetURLsFile updates the URLs file path.
func (s *SettingsService) SetURLsFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("urls file path: %w", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Web.URLsFile = path
	return s.Save(settings)
}

// SetOpenAIKey stores the OpenAI API key after checking it against the
// configured endpoint.
func (s *SettingsService) SetOpenAIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key: %w", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.OpenAI.APIKey = key

	if s.aiValidator != nil {
		if err := s.aiValidator.ValidateOpenAI(&settings.OpenAI); err != nil {
			return fmt.Errorf("validate openai key: %w", err)
		}
	}

	return s.Save(settings)
}

// Set stores a raw configuration value by key. The string form is
// converted to the key's native type first; unknown keys are rejected.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSettingValue(key, value)
	if err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Value returns the current value of a configuration key in the same
// string form Set accepts. Unset keys report their effective default.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := settingKinds[key]; !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return formatSettingValue(key, settings), nil
}

// Keys lists all known configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for key := range settingKinds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the current settings for consistency.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Defaults returns the built-in default settings.
func (s *SettingsService) Defaults() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	return &defaults
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// settingKind is the native type a config key is stored as.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindStringSlice
	kindFloatSlice
)

// settingKinds drives string parsing for the raw Set entry point.
var settingKinds = map[string]settingKind{
	keyModels:          kindStringSlice,
	keyOpenAIModels:    kindStringSlice,
	keyTemperature:     kindFloat,
	keyRepetitions:     kindInt,
	keyConcurrency:     kindInt,
	keyMaxContentChars: kindInt,
	keySystemPrompt:    kindString,
	keyUserPrompt:      kindString,
	keyMailArchive:     kindString,
	keyMailIndex:       kindString,
	keyMailStartRow:    kindInt,
	keyMailNumRecords:  kindInt,
	keyURLsFile:        kindString,
	keyWebTimeout:      kindInt,
	keyWebRate:         kindFloat,
	keyResultColumns:   kindInt,
	keyReportDir:       kindString,
	keyArticlesCSV:     kindString,
	keyOpenBrowser:     kindBool,
	keyOllamaBaseURL:   kindString,
	keyOllamaKeepAlive: kindString,
	keyOpenAIBaseURL:   kindString,
	keyOpenAIAPIKey:    kindString,
	keyQuestionBank:    kindString,
	keyBenchTemps:      kindFloatSlice,
	keyJudgeModel:      kindString,
}

// parseSettingValue converts the CLI's string form of a value to the
// key's native type.
func parseSettingValue(key, value string) (any, error) {
	kind, ok := settingKinds[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s needs an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil

	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s needs a number, got %q", domain.ErrInvalidInput, key, value)
		}
		return f, nil

	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s needs true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		return b, nil

	case kindStringSlice:
		return splitList(value), nil

	case kindFloatSlice:
		var floats []float64
		for _, item := range splitList(value) {
			f, err := strconv.ParseFloat(item, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s needs numbers, got %q", domain.ErrInvalidInput, key, item)
			}
			floats = append(floats, f)
		}
		return floats, nil

	default:
		return value, nil
	}
}

// formatSettingValue renders a settings field the way Set parses it.
func formatSettingValue(key string, settings *domain.AppSettings) string {
	switch key {
	case keyModels:
		return strings.Join(settings.Models, ",")
	case keyOpenAIModels:
		return strings.Join(settings.OpenAIModels, ",")
	case keyTemperature:
		return formatFloat(settings.Temperature)
	case keyRepetitions:
		return strconv.Itoa(settings.Repetitions)
	case keyConcurrency:
		return strconv.Itoa(settings.Concurrency)
	case keyMaxContentChars:
		return strconv.Itoa(settings.MaxContentChars)
	case keySystemPrompt:
		return settings.SystemPrompt
	case keyUserPrompt:
		return settings.UserPrompt
	case keyMailArchive:
		return settings.Mail.ArchivePath
	case keyMailIndex:
		return settings.Mail.IndexPath
	case keyMailStartRow:
		return strconv.Itoa(settings.Mail.StartRow)
	case keyMailNumRecords:
		return strconv.Itoa(settings.Mail.NumRecords)
	case keyURLsFile:
		return settings.Web.URLsFile
	case keyWebTimeout:
		return strconv.Itoa(settings.Web.TimeoutSeconds)
	case keyWebRate:
		return formatFloat(settings.Web.RequestsPerSecond)
	case keyResultColumns:
		return strconv.Itoa(settings.ResultColumns)
	case keyReportDir:
		return settings.Output.Directory
	case keyArticlesCSV:
		return settings.Output.ArticlesCSV
	case keyOpenBrowser:
		return strconv.FormatBool(settings.Output.OpenBrowser)
	case keyOllamaBaseURL:
		return settings.Ollama.BaseURL
	case keyOllamaKeepAlive:
		return settings.Ollama.KeepAlive
	case keyOpenAIBaseURL:
		return settings.OpenAI.BaseURL
	case keyOpenAIAPIKey:
		return settings.OpenAI.APIKey
	case keyQuestionBank:
		return settings.Bench.QuestionBank
	case keyBenchTemps:
		items := make([]string, 0, len(settings.Bench.Temperatures))
		for _, t := range settings.Bench.Temperatures {
			items = append(items, formatFloat(t))
		}
		return strings.Join(items, ",")
	case keyJudgeModel:
		return settings.Bench.JudgeModel
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// splitList splits a comma-separated list, trimming and dropping empty
// items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats a present key as authoritative: zero is a valid stored
// value for keys like mail.start_row.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

// getFloat treats a present key as authoritative: a stored temperature
// of zero means deterministic sampling, not "use the default".
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloatSlice(key string, defaultVal []float64) []float64 {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}

	var floats []float64
	switch items := raw.(type) {
	case []float64:
		floats = items
	case []any:
		for _, item := range items {
			switch v := item.(type) {
			case float64:
				floats = append(floats, v)
			case int64:
				floats = append(floats, float64(v))
			case int:
				floats = append(floats, float64(v))
			}
		}
	}

	if len(floats) == 0 {
		return defaultVal
	}
	return floats
}
