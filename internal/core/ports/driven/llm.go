// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// LLMService provides language model operations for a single model on a
// single backend.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (hosted models, or any compatible endpoint)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*domain.Completion, error)

	// Chat conducts a multi-turn conversation and returns the reply with
	// its timing metadata.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*domain.Completion, error)

	// Preload warms the model so the first timed run does not pay the
	// load cost. Backends without a warm-up surface return nil.
	Preload(ctx context.Context) error

	// Models lists the model names the backend currently serves.
	Models(ctx context.Context) ([]string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// LLMFactory resolves model names to backend services.
type LLMFactory interface {
	// ServiceFor returns the service handling the given model name.
	// The same service instance is returned for repeat calls.
	ServiceFor(model string) (LLMService, error)

	// Close releases all created services.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// System primes the model before the prompt, when non-empty.
	System string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
