package domain

import (
	"fmt"
	"time"
)

// Completion is one raw model response.
type Completion struct {
	// Content is the generated text.
	Content string

	// Model produced the response.
	Model string

	// Duration is the wall-clock time of the call.
	Duration time.Duration

	// TokensEvaluated is the backend-reported output token count, when
	// the backend exposes it (Ollama eval_count). Zero otherwise.
	TokensEvaluated int
}

// Run is one result cell of a comparison row: a summary plus its timing.
type Run struct {
	// Content is the generated summary, raw markup allowed.
	Content string

	// Duration is how long the run took.
	Duration time.Duration
}

// Cell renders the run as report cell markup with the timing annotation
// the highlighter recognises and excludes from uniqueness.
func (r Run) Cell() string {
	return fmt.Sprintf("%s<br>(Time: %.2fs)", r.Content, r.Duration.Seconds())
}

// ModelRuns is one comparison row: all runs of a single model.
type ModelRuns struct {
	// Model is the row label.
	Model string

	// Runs are the repeated samples, in execution order.
	Runs []Run

	// Err records a model that failed entirely; its row still renders so
	// the report shows which backend fell over.
	Err error
}

// AverageTime returns the mean run duration, zero when there are no runs.
func (m ModelRuns) AverageTime() time.Duration {
	if len(m.Runs) == 0 {
		return 0
	}
	var total time.Duration
	for _, r := range m.Runs {
		total += r.Duration
	}
	return total / time.Duration(len(m.Runs))
}

// TotalTime returns the summed run duration.
func (m ModelRuns) TotalTime() time.Duration {
	var total time.Duration
	for _, r := range m.Runs {
		total += r.Duration
	}
	return total
}

// Cells renders the row's result cells padded or truncated to the report
// width. Missing runs become empty cells, matching rows where a model runs
// fewer repetitions than the table has columns.
func (m ModelRuns) Cells(columns int) []string {
	cells := make([]string, 0, columns)
	for i := 0; i < columns; i++ {
		if i < len(m.Runs) {
			cells = append(cells, m.Runs[i].Cell())
			continue
		}
		cells = append(cells, "")
	}
	return cells
}

// Evaluation is one full comparison of all configured models over a source.
type Evaluation struct {
	// ID is the unique identifier for the evaluation.
	ID string

	// Source is what was summarised.
	Source Source

	// Rows hold per-model results in configured model order.
	Rows []ModelRuns

	// SystemPrompt and UserPrompt are the prompts used, echoed in the report.
	SystemPrompt string
	UserPrompt   string

	// StartedAt and FinishedAt bound the whole comparison.
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall-clock time of the whole comparison.
func (e *Evaluation) Duration() time.Duration {
	if e.FinishedAt.IsZero() {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

// Report holds a written report file.
type Report struct {
	// Path is the file location.
	Path string

	// Highlighted says whether differences have been marked.
	Highlighted bool

	// CreatedAt is the file timestamp.
	CreatedAt time.Time
}
