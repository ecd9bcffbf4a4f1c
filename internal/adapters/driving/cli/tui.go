package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/tui"
)

// tuiCmd is an explicit alias for the default behaviour: running
// sumdiff without arguments opens the same menu.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Sumdiff.

The TUI provides the original interactive menu: evaluate the mail
archive, web pages, or a direct prompt, run the benchmark, and inspect
settings and recent reports.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Run
  Esc      - Back / Cancel
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps stack traces readable after the alternate
	// screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Evaluation: evaluationService,
		Bench:      benchService,
		Models:     modelService,
		Settings:   settingsService,
		Highlight:  highlightService,
		Actions:    actionService,
		Reports:    reportStore,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
