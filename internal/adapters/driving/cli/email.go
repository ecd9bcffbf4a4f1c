package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

var (
	emailPromptSet string
	emailModels    []string
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Evaluate newsletter articles from the mail archive",
	Long: `Scans the configured OE Classic mail archive for newsletter messages,
extracts the linked articles into a CSV log, then fetches and evaluates
the configured row range across all models.

The archive path and row range come from settings (mail.archive,
mail.start_row, mail.num_records).`,
	Args: cobra.NoArgs,
	RunE: runEmail,
}

func init() {
	emailCmd.Flags().StringVar(&emailPromptSet, "prompts", "", "named prompt set to use")
	emailCmd.Flags().StringSliceVarP(&emailModels, "model", "m", nil, "model to evaluate (repeatable, overrides settings)")
	rootCmd.AddCommand(emailCmd)
}

func runEmail(cmd *cobra.Command, _ []string) error {
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	opts := driving.EvaluateOptions{
		PromptSet:   emailPromptSet,
		Models:      emailModels,
		OpenBrowser: shouldOpenBrowser(),
	}

	results, err := evaluationService.EvaluateEmail(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("email evaluation failed: %w", err)
	}

	if len(results) > 0 && results[0].Articles != nil {
		cmd.Printf("Extracted %d unique articles from the archive.\n", len(results[0].Articles))
	}
	cmd.Printf("Evaluated %d article(s).\n", len(results))
	printResults(cmd, results)

	return nil
}
