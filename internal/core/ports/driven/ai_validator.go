package driven

import "github.com/custodia-labs/sumdiff-cli/internal/core/domain"

// AIConfigValidator validates LLM backend configurations.
// Implementations verify that configurations are usable by testing
// connectivity to the underlying services.
type AIConfigValidator interface {
	// ValidateOllama validates an Ollama configuration by pinging the
	// endpoint. Returns nil when settings are nil.
	ValidateOllama(settings *domain.OllamaSettings) error

	// ValidateOpenAI validates an OpenAI configuration by pinging the
	// API. Returns nil when no API key is configured.
	ValidateOpenAI(settings *domain.OpenAISettings) error
}
