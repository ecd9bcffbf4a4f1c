package ai

import (
	"context"
	"time"

	ollamallm "github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Ensure Validator implements the interface.
var _ driven.AIConfigValidator = (*Validator)(nil)

// Validator checks backend configurations by pinging their endpoints.
type Validator struct{}

// NewValidator creates a config validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateOllama validates an Ollama configuration by pinging the endpoint.
func (v *Validator) ValidateOllama(settings *domain.OllamaSettings) error {
	return ValidateOllamaConfig(settings)
}

// ValidateOpenAI validates an OpenAI configuration by pinging the API.
func (v *Validator) ValidateOpenAI(settings *domain.OpenAISettings) error {
	return ValidateOpenAIConfig(settings)
}

// ValidateOllamaConfig validates an Ollama configuration by pinging the endpoint.
// This is intended for settings changes, so a bad URL surfaces immediately
// instead of at the first evaluation run.
func ValidateOllamaConfig(settings *domain.OllamaSettings) error {
	if settings == nil {
		return nil
	}

	svc := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL:   settings.BaseURL,
		KeepAlive: settings.KeepAlive,
	})
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateOpenAIConfig validates an OpenAI configuration by pinging the API.
// This is intended for key changes, so a bad key surfaces immediately
// instead of at the first evaluation run.
func ValidateOpenAIConfig(settings *domain.OpenAISettings) error {
	if settings == nil || settings.APIKey == "" {
		return nil
	}

	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
