package domain

import (
	"sort"
	"time"
)

// Question is one entry of the benchmark question bank.
type Question struct {
	// ID identifies the question inside its category.
	ID string `json:"id"`

	// Question is the prompt sent to each model.
	Question string `json:"question"`

	// ExpectedAnswer is the reference answer scored against.
	ExpectedAnswer string `json:"expected_answer"`

	// ScoringCriteria guides the judge model. Optional.
	ScoringCriteria string `json:"scoring_criteria,omitempty"`
}

// Criteria returns the scoring criteria, falling back to a general
// instruction when the question does not carry one.
func (q Question) Criteria() string {
	if q.ScoringCriteria != "" {
		return q.ScoringCriteria
	}
	return "General accuracy and relevance"
}

// QuestionBank maps category names to their questions.
type QuestionBank map[string][]Question

// Categories returns the category names in sorted order.
func (b QuestionBank) Categories() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemperatureLabel names a sampling temperature in benchmark results.
// Zero is the deterministic run, everything else counts as normal.
func TemperatureLabel(t float64) string {
	if t == 0.0 {
		return "zero_temp"
	}
	return "normal_temp"
}

// SimilarityScores are the lexical comparison metrics between an
// expected answer and a model response.
type SimilarityScores struct {
	// WordSimilarity is the sequence-match ratio over lowercased
	// words, in [0, 1].
	WordSimilarity float64

	// CharSimilarity is the sequence-match ratio over lowercased
	// characters, in [0, 1].
	CharSimilarity float64

	// LengthRatio is min(len)/max(len) of the two texts.
	LengthRatio float64

	// ExactMatch is true when the texts match ignoring case and
	// surrounding whitespace.
	ExactMatch bool
}

// JudgeVerdict is the AI judge's assessment of one answer.
type JudgeVerdict struct {
	// Score is 0-100, clamped.
	Score int

	// Reasoning is the judge's brief justification.
	Reasoning string
}

// BenchResult is one model's answer to one question at one temperature.
type BenchResult struct {
	// Category and Question locate the bank entry.
	Category string
	Question Question

	// Model answered the question.
	Model string

	// Temperature used for sampling.
	Temperature float64

	// Response is the model's answer, or an error note when the call failed.
	Response string

	// Duration is the wall-clock time of the call.
	Duration time.Duration

	// Similarity holds the lexical scores against the expected answer.
	Similarity SimilarityScores

	// Judge is the AI judge's verdict; zero-valued when judging failed.
	Judge JudgeVerdict

	// Failed marks responses that errored rather than answered.
	Failed bool
}
