package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var highlightOpen bool

var highlightCmd = &cobra.Command{
	Use:   "highlight [file]",
	Short: "Highlight model differences in a report",
	Long: `Rewrites an existing comparison report so that words unique to one
result column are marked, writes it next to the original under a
.highlighted name, and removes the original.`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().BoolVar(&highlightOpen, "open", false, "open the highlighted report in the browser")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	report, err := highlightService.HighlightFile(args[0])
	if err != nil {
		return fmt.Errorf("highlighting failed: %w", err)
	}

	cmd.Printf("Highlighted report written to %s\n", report.Path)

	if highlightOpen && !flagNoBrowser && actionService != nil {
		if err := actionService.OpenReport(cmd.Context(), report.Path); err != nil {
			cmd.Printf("Could not open browser: %v\n", err)
		}
	}

	return nil
}
