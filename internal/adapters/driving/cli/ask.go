package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

var (
	askTitle     string
	askPromptSet string
	askModels    []string
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Compare model answers to a direct prompt",
	Long: `Sends the prompt to every configured model and builds the same
highlighted comparison report the summarisation flows produce.

The prompt is sent as-is, without the summarisation prompt template, so
questions are answered rather than summarised.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askTitle, "title", "t", "Direct prompt", "report title for the comparison")
	askCmd.Flags().StringVar(&askPromptSet, "prompts", "", "named prompt set for the system prompt")
	askCmd.Flags().StringSliceVarP(&askModels, "model", "m", nil, "model to evaluate (repeatable, overrides settings)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	opts := driving.EvaluateOptions{
		PromptSet:   askPromptSet,
		Models:      askModels,
		OpenBrowser: shouldOpenBrowser(),
	}

	result, err := evaluationService.EvaluateText(cmd.Context(), askTitle, args[0], opts)
	if err != nil {
		return fmt.Errorf("prompt evaluation failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
