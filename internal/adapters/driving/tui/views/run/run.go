// Package run provides the evaluation progress and results view for the TUI.
package run

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

// View shows a running evaluation and, once finished, its results.
type View struct {
	styles *styles.Styles

	spinner spinner.Model
	kind    messages.RunKind

	running bool
	results []driving.EvaluationResult
	bench   *driving.BenchSummary
	err     error
	opened  string

	width  int
	height int
	ready  bool
}

// NewView creates a new run view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Selected

	return &View{
		styles:  s,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Start puts the view into its running state for the given kind.
func (v *View) Start(kind messages.RunKind) tea.Cmd {
	v.kind = kind
	v.running = true
	v.results = nil
	v.bench = nil
	v.err = nil
	v.opened = ""
	return v.spinner.Tick
}

// Running reports whether an evaluation is still in flight.
func (v *View) Running() bool {
	return v.running
}

// Results returns the finished evaluations, nil while running.
func (v *View) Results() []driving.EvaluationResult {
	return v.results
}

// Err returns the failure of the last run, if any.
func (v *View) Err() error {
	return v.err
}

// Update handles messages for the run view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.running {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.RunCompleted:
		v.running = false
		v.results = msg.Results
		v.err = msg.Err
		return v, nil

	case messages.BenchCompleted:
		v.running = false
		v.bench = msg.Summary
		v.err = msg.Err
		return v, nil

	case messages.ReportOpened:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.opened = msg.Path
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return v, nil
}

// updateKeys handles key presses. While running only esc works, so a
// stuck backend cannot trap the user in the view.
func (v *View) updateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "o", "enter":
		if v.running {
			return v, nil
		}
		if path := v.reportPath(); path != "" {
			return v, func() tea.Msg {
				return messages.OpenReportRequested{Path: path}
			}
		}
	}

	return v, nil
}

// reportPath returns the newest finished report of the run, or the
// benchmark report when the run was a benchmark.
func (v *View) reportPath() string {
	if v.bench != nil {
		return v.bench.ReportPath
	}
	for i := len(v.results) - 1; i >= 0; i-- {
		if v.results[i].Report != nil {
			return v.results[i].Report.Path
		}
	}
	return ""
}

// View renders the run view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n\n")

	switch {
	case v.running:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Normal.Render(" Running models, this can take a while..."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Esc] Back to menu (run keeps going)"))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Failed: %v", v.err)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Esc] Back"))

	case v.bench != nil:
		v.renderBench(&b)

	default:
		v.renderResults(&b)
	}

	return b.String()
}

// renderResults writes the per-evaluation summary lines.
func (v *View) renderResults(b *strings.Builder) {
	if len(v.results) == 0 {
		b.WriteString(v.styles.Muted.Render("No results."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Esc] Back"))
		return
	}

	for i := range v.results {
		eval := v.results[i].Evaluation
		b.WriteString(v.styles.Subtitle.Render(eval.Source.Title))
		b.WriteString("\n")

		for _, row := range eval.Rows {
			if row.Err != nil {
				b.WriteString(v.styles.Error.Render(
					fmt.Sprintf("  %-28s failed: %v", row.Model, row.Err)))
				b.WriteString("\n")
				continue
			}
			b.WriteString(v.styles.Normal.Render(
				fmt.Sprintf("  %-28s %d run(s), avg %.2fs",
					row.Model, len(row.Runs), row.AverageTime().Seconds())))
			b.WriteString("\n")
		}

		if report := v.results[i].Report; report != nil {
			b.WriteString(v.styles.Muted.Render("  Report: " + report.Path))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.opened != "" {
		b.WriteString(v.styles.Success.Render("Opened " + v.opened))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[o] Open report  [Esc] Back"))
}

// renderBench writes the benchmark summary.
func (v *View) renderBench(b *strings.Builder) {
	results := v.bench.Results
	b.WriteString(v.styles.Normal.Render(
		fmt.Sprintf("%d question/model/temperature runs completed.", len(results))))
	b.WriteString("\n")

	failed := 0
	for i := range results {
		if results[i].Failed {
			failed++
		}
	}
	if failed > 0 {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%d runs failed.", failed)))
		b.WriteString("\n")
	}

	if v.bench.ReportPath != "" {
		b.WriteString(v.styles.Muted.Render("Report: " + v.bench.ReportPath))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[o] Open report  [Esc] Back"))
}

// title names the view after what is being run.
func (v *View) title() string {
	switch v.kind {
	case messages.RunEmail:
		return "Mail Archive Evaluation"
	case messages.RunWeb:
		return "Web URL Evaluation"
	case messages.RunPrompt:
		return "Prompt Evaluation"
	case messages.RunBench:
		return "Benchmark"
	default:
		return "Evaluation"
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
