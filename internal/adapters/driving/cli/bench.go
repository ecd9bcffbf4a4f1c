package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

var (
	benchModels []string
	benchLimit  int
	benchList   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [category]",
	Short: "Benchmark models against the question bank",
	Long: `Asks every configured model the questions of the question bank, once
per benchmark temperature, and scores the answers lexically and with a
judge model. A markdown report with the full answers is written to the
output directory.

With a category argument only that category runs; otherwise all of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringSliceVarP(&benchModels, "model", "m", nil, "model to benchmark (repeatable, overrides settings)")
	benchCmd.Flags().IntVar(&benchLimit, "limit", 0, "maximum questions per category (0 = all)")
	benchCmd.Flags().BoolVar(&benchList, "list", false, "list question bank categories and exit")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchService == nil {
		return errors.New("benchmark service not configured")
	}

	if benchList {
		return listCategories(cmd)
	}

	opts := driving.BenchOptions{
		Models: benchModels,
		Limit:  benchLimit,
	}
	if len(args) == 1 {
		opts.Categories = []string{args[0]}
	}

	summary, err := benchService.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	printBenchSummary(cmd, summary)
	return nil
}

func listCategories(cmd *cobra.Command) error {
	categories, err := benchService.Categories()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		cmd.Println("The question bank is empty.")
		return nil
	}

	cmd.Println("Question bank categories:")
	for _, category := range categories {
		cmd.Printf("  %s\n", category)
	}
	return nil
}

func printBenchSummary(cmd *cobra.Command, summary *driving.BenchSummary) {
	if len(summary.Results) == 0 {
		cmd.Println("No questions were run.")
		return
	}

	type aggregate struct {
		model string
		temp  float64
		score int
		runs  int
		fails int
	}

	// Aggregates keep first-appearance order, which follows the
	// configured model order.
	byKey := make(map[string]*aggregate)
	var order []string
	for _, result := range summary.Results {
		key := fmt.Sprintf("%s@%g", result.Model, result.Temperature)
		agg, ok := byKey[key]
		if !ok {
			agg = &aggregate{model: result.Model, temp: result.Temperature}
			byKey[key] = agg
			order = append(order, key)
		}
		agg.runs++
		if result.Failed {
			agg.fails++
			continue
		}
		agg.score += result.Judge.Score
	}

	cmd.Printf("Ran %d question/model combinations.\n\n", len(summary.Results))
	for _, key := range order {
		agg := byKey[key]
		scored := agg.runs - agg.fails
		avg := 0.0
		if scored > 0 {
			avg = float64(agg.score) / float64(scored)
		}

		line := fmt.Sprintf("  %-28s temp %.1f  judge %.1f/100", agg.model, agg.temp, avg)
		if agg.fails > 0 {
			line += fmt.Sprintf("  (%d failed)", agg.fails)
		}
		cmd.Println(line)
	}

	if summary.ReportPath != "" {
		cmd.Printf("\nReport: %s\n", summary.ReportPath)
	}
}
