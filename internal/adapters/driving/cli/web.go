package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

var (
	webFile      string
	webPromptSet string
	webModels    []string
)

var webCmd = &cobra.Command{
	Use:   "web [url]",
	Short: "Evaluate web pages",
	Long: `Fetches a page, extracts its article text, and evaluates it across
the configured models.

With a URL argument only that page is evaluated. Without one, every URL
in the configured URLs file is evaluated, one report per line; --file
overrides the configured file for this run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVarP(&webFile, "file", "f", "", "URLs file to evaluate instead of the configured one")
	webCmd.Flags().StringVar(&webPromptSet, "prompts", "", "named prompt set to use")
	webCmd.Flags().StringSliceVarP(&webModels, "model", "m", nil, "model to evaluate (repeatable, overrides settings)")
	rootCmd.AddCommand(webCmd)
}

func runWeb(cmd *cobra.Command, args []string) error {
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	opts := driving.EvaluateOptions{
		PromptSet:   webPromptSet,
		Models:      webModels,
		URLsFile:    webFile,
		OpenBrowser: shouldOpenBrowser(),
	}

	if len(args) == 1 {
		if webFile != "" {
			return errors.New("either give a URL or --file, not both")
		}

		result, err := evaluationService.EvaluateURL(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("web evaluation failed: %w", err)
		}
		printResult(cmd, result)
		return nil
	}

	results, err := evaluationService.EvaluateURLs(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("web evaluation failed: %w", err)
	}

	cmd.Printf("Evaluated %d page(s).\n", len(results))
	printResults(cmd, results)
	return nil
}
