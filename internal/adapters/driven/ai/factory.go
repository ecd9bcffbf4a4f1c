// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"fmt"
	"sync"

	ollamallm "github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.LLMFactory = (*Factory)(nil)

// Factory resolves model names to backend services.
// Services are created lazily and cached per model, so repeated runs
// against the same model reuse one HTTP client.
type Factory struct {
	mu       sync.Mutex
	settings *domain.AppSettings
	services map[string]driven.LLMService
}

// NewFactory creates a factory for the given settings.
func NewFactory(settings *domain.AppSettings) *Factory {
	return &Factory{
		settings: settings,
		services: make(map[string]driven.LLMService),
	}
}

// ServiceFor returns the service handling the given model name.
// The same service instance is returned for repeat calls.
func (f *Factory) ServiceFor(model string) (driven.LLMService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if svc, ok := f.services[model]; ok {
		return svc, nil
	}

	svc, err := f.create(model)
	if err != nil {
		return nil, err
	}

	f.services[model] = svc
	return svc, nil
}

// create builds the service for a model based on its provider.
func (f *Factory) create(model string) (driven.LLMService, error) {
	switch f.settings.ProviderFor(model) {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL:   f.settings.Ollama.BaseURL,
			Model:     model,
			KeepAlive: f.settings.Ollama.KeepAlive,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  f.settings.OpenAI.APIKey,
			BaseURL: f.settings.OpenAI.BaseURL,
			Model:   model,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w. Run 'sumdiff settings set-key openai' to fix",
				domain.ErrProviderUnavailable, err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("%w: model %q", domain.ErrUnsupportedProvider, model)
	}
}

// Close releases all created services.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	for model, svc := range f.services {
		if err := svc.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", model, err)
		}
	}
	f.services = make(map[string]driven.LLMService)
	return firstErr
}
