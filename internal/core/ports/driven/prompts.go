package driven

import "github.com/custodia-labs/sumdiff-cli/internal/core/domain"

// PromptSet is a named system/user prompt pair for summarisation runs.
type PromptSet struct {
	// Name identifies the set (e.g. "default", "product_vision").
	Name string

	// System primes the model.
	System string

	// User precedes the source text.
	User string
}

// PromptStore provides named prompt sets and the benchmark question bank.
// Implementations may load from files or fall back to built-in defaults.
type PromptStore interface {
	// Set returns the prompt set with the given name.
	// The empty name returns the default set.
	Set(name string) (PromptSet, error)

	// Names lists available prompt set names in sorted order.
	Names() []string

	// QuestionBank loads the benchmark question bank.
	QuestionBank() (domain.QuestionBank, error)

	// Reload clears cached state, forcing fresh loads on next access.
	// Useful when files were edited on disk.
	Reload()
}
