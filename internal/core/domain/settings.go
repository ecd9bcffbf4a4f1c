package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API (or a compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns the supported providers.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// MailSettings holds OE Classic mail archive configuration.
type MailSettings struct {
	// ArchivePath is the .mbx message archive.
	ArchivePath string

	// IndexPath is the sibling SQLite index database.
	IndexPath string

	// StartRow is the first article row of the CSV log to evaluate.
	StartRow int

	// NumRecords is how many article rows to evaluate per run.
	NumRecords int
}

// WebSettings holds web fetching configuration.
type WebSettings struct {
	// URLsFile is a text file with one URL per line.
	URLsFile string

	// TimeoutSeconds bounds a single page fetch.
	TimeoutSeconds int

	// RequestsPerSecond throttles outgoing fetches.
	RequestsPerSecond float64
}

// OutputSettings holds report output configuration.
type OutputSettings struct {
	// Directory is where reports are written.
	Directory string

	// ArticlesCSV is the article log produced by the email pipeline.
	ArticlesCSV string

	// OpenBrowser opens finished reports in the default browser.
	OpenBrowser bool
}

// OllamaSettings holds the local Ollama endpoint configuration.
type OllamaSettings struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// KeepAlive is passed verbatim to the backend to keep models warm
	// between repetitions (e.g. "30s").
	KeepAlive string
}

// OpenAISettings holds the OpenAI-compatible endpoint configuration.
type OpenAISettings struct {
	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey authenticates requests. Falls back to OPENAI_API_KEY.
	APIKey string
}

// BenchSettings holds prompt benchmark configuration.
type BenchSettings struct {
	// QuestionBank is the JSON file of categorised questions.
	QuestionBank string

	// Temperatures are sampled per question; the original pairing of a
	// deterministic and a creative setting.
	Temperatures []float64

	// JudgeModel scores answers against the expected one.
	JudgeModel string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Models are evaluated in order; each becomes one report row.
	Models []string

	// OpenAIModels marks which model names route to the OpenAI backend.
	// Everything else is served by Ollama.
	OpenAIModels []string

	// Temperature is the sampling temperature for summarisation runs.
	Temperature float64

	// Repetitions is how many runs each local model performs per input.
	// Hosted models always run once.
	Repetitions int

	// ResultColumns is the report width: result cells per row. The
	// highlighter computes uniqueness over this many columns.
	ResultColumns int

	// Concurrency bounds how many models are evaluated in parallel.
	Concurrency int

	// MaxContentChars truncates source text before summarisation.
	MaxContentChars int

	// SystemPrompt primes every summarisation call.
	SystemPrompt string

	// UserPrompt precedes the source text in every summarisation call.
	UserPrompt string

	// Mail holds mail archive settings.
	Mail MailSettings

	// Web holds web fetching settings.
	Web WebSettings

	// Output holds report output settings.
	Output OutputSettings

	// Ollama holds the local backend settings.
	Ollama OllamaSettings

	// OpenAI holds the cloud backend settings.
	OpenAI OpenAISettings

	// Bench holds prompt benchmark settings.
	Bench BenchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Models:          []string{"llama3.2", "mistral", "gemma2:9b", "gpt-4o-mini-2024-07-18"},
		OpenAIModels:    []string{"gpt-4o-mini-2024-07-18"},
		Temperature:     0.8,
		Repetitions:     3,
		ResultColumns:   3,
		Concurrency:     2,
		MaxContentChars: 8000,
		SystemPrompt:    "You are a summarization assistant.",
		UserPrompt: "Provide once sentence summary of the text. " +
			"Start the sentence with a verb like describes, explains or similar. TEXT START:",
		Mail: MailSettings{
			StartRow:   44,
			NumRecords: 1,
		},
		Web: WebSettings{
			URLsFile:          "urls.txt",
			TimeoutSeconds:    30,
			RequestsPerSecond: 1.0,
		},
		Output: OutputSettings{
			Directory:   ".",
			ArticlesCSV: "extracted_articles.csv",
			OpenBrowser: true,
		},
		Ollama: OllamaSettings{
			BaseURL:   "http://localhost:11434",
			KeepAlive: "30s",
		},
		OpenAI: OpenAISettings{
			BaseURL: "https://api.openai.com/v1",
		},
		Bench: BenchSettings{
			Temperatures: []float64{0.0, 0.8},
			JudgeModel:   "llama3.2",
		},
	}
}

// IsOpenAIModel returns true if the model routes to the OpenAI backend.
func (s AppSettings) IsOpenAIModel(model string) bool {
	for _, m := range s.OpenAIModels {
		if m == model {
			return true
		}
	}
	return false
}

// ProviderFor resolves the provider serving a model name.
func (s AppSettings) ProviderFor(model string) AIProvider {
	if s.IsOpenAIModel(model) {
		return AIProviderOpenAI
	}
	return AIProviderOllama
}

// RepetitionsFor returns how many runs a model performs per input.
// Hosted models are sampled once; local models repeat.
func (s AppSettings) RepetitionsFor(model string) int {
	if s.IsOpenAIModel(model) {
		return 1
	}
	return s.Repetitions
}

// Validate checks the settings for values the pipelines cannot work with.
func (s AppSettings) Validate() error {
	if len(s.Models) == 0 {
		return ErrNoModels
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return ErrInvalidInput
	}
	if s.Repetitions < 1 || s.ResultColumns < 1 || s.Concurrency < 1 {
		return ErrInvalidInput
	}
	if s.MaxContentChars < 1 {
		return ErrInvalidInput
	}
	if s.Mail.StartRow < 0 || s.Mail.NumRecords < 0 {
		return ErrInvalidInput
	}
	if s.Web.TimeoutSeconds < 1 || s.Web.RequestsPerSecond <= 0 {
		return ErrInvalidInput
	}
	for _, t := range s.Bench.Temperatures {
		if t < 0 || t > 2 {
			return ErrInvalidInput
		}
	}
	return nil
}
