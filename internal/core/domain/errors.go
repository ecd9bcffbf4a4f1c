package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable indicates an LLM backend cannot be reached.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrModelUnavailable indicates a configured model is not present on its backend.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrUnsupportedProvider indicates a model resolves to no known provider.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// Mailbox Errors.

	// ErrMailboxCorrupt indicates the mail archive deviates from the OE Classic record format.
	ErrMailboxCorrupt = errors.New("mailbox corrupt")

	// ErrNoArticles indicates no article links were found in a newsletter body.
	ErrNoArticles = errors.New("no articles found")

	// Evaluation Errors.

	// ErrEmptyContent indicates there is no text to summarise.
	ErrEmptyContent = errors.New("empty content")

	// ErrNoModels indicates no models are configured for evaluation.
	ErrNoModels = errors.New("no models configured")

	// Benchmark Errors.

	// ErrUnknownCategory indicates the question bank has no such category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNoQuestions indicates the question bank is empty or missing.
	ErrNoQuestions = errors.New("no questions available")

	// Watch Errors.

	// ErrAlreadyWatching indicates a watch loop is already running for the path.
	ErrAlreadyWatching = errors.New("already watching")
)
