// Package cli implements the sumdiff command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
)

// version is the application version, overridden at build time via ldflags.
var version = "dev"

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Services the commands call, injected by main before Execute.
var (
	evaluationService driving.EvaluationService
	highlightService  driving.HighlightService
	benchService      driving.BenchmarkService
	modelService      driving.ModelService
	settingsService   driving.SettingsService
	actionService     driving.ActionService
	watchService      driving.WatchService
	reportStore       driven.ReportStore
)

// Persistent flag values.
var (
	flagVerbose   bool
	flagNoBrowser bool
	flagOutput    string
)

// Services bundles the application services the commands depend on.
type Services struct {
	Evaluation driving.EvaluationService
	Highlight  driving.HighlightService
	Bench      driving.BenchmarkService
	Models     driving.ModelService
	Settings   driving.SettingsService
	Actions    driving.ActionService
	Watch      driving.WatchService
	Reports    driven.ReportStore
}

// SetServices injects the services the commands call.
func SetServices(services *Services) {
	if services == nil {
		return
	}
	evaluationService = services.Evaluation
	highlightService = services.Highlight
	benchService = services.Bench
	modelService = services.Models
	settingsService = services.Settings
	actionService = services.Actions
	watchService = services.Watch
	reportStore = services.Reports
}

// GlobalOptions carries the persistent flag values into deferred wiring.
type GlobalOptions struct {
	Verbose   bool
	NoBrowser bool
	OutputDir string
}

// WireFunc builds the services once the persistent flags are parsed.
type WireFunc func(opts GlobalOptions) (*Services, error)

// wireFunc is consumed on first use; nil afterwards.
var wireFunc WireFunc

// SetWireFunc defers service construction until the flags are known, so
// --output can pick the report directory before the stores are built.
func SetWireFunc(fn WireFunc) {
	wireFunc = fn
}

var rootCmd = &cobra.Command{
	Use:   "sumdiff",
	Short: "Compare LLM summaries across models",
	Long: `Sumdiff runs the same summarisation prompt against several LLMs,
collects the answers into an HTML comparison report, and highlights the
words each model used that no other model did.

Sources can be newsletter articles from an OE Classic mail archive, web
pages, or text given directly on the command line. Run without arguments
to use the interactive menu.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runTUI,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return wireOnce()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoBrowser, "no-browser", false, "never open reports in the browser")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "directory for reports (overrides settings)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context, so a
// signal can cancel long evaluation and watch runs.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// wireOnce builds the services on first use when main deferred wiring.
func wireOnce() error {
	if wireFunc == nil {
		return nil
	}
	fn := wireFunc
	wireFunc = nil

	services, err := fn(GlobalOptions{
		Verbose:   flagVerbose,
		NoBrowser: flagNoBrowser,
		OutputDir: flagOutput,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise services: %w", err)
	}
	SetServices(services)
	return nil
}

// Shared helpers for the evaluation commands.

// shouldOpenBrowser honours the configured preference unless --no-browser
// overrides it.
func shouldOpenBrowser() bool {
	if flagNoBrowser || settingsService == nil {
		return false
	}
	settings, err := settingsService.Get()
	if err != nil {
		return false
	}
	return settings.Output.OpenBrowser
}

// printResults summarises finished evaluations on the terminal.
func printResults(cmd *cobra.Command, results []driving.EvaluationResult) {
	for i := range results {
		printResult(cmd, &results[i])
	}
}

func printResult(cmd *cobra.Command, result *driving.EvaluationResult) {
	eval := result.Evaluation
	cmd.Println()
	cmd.Println(eval.Source.Title)
	if eval.Source.Reference != "" && eval.Source.Reference != eval.Source.Title {
		cmd.Printf("  Source: %s\n", eval.Source.Reference)
	}

	for _, row := range eval.Rows {
		if row.Err != nil {
			cmd.Printf("  %-28s failed: %v\n", row.Model, row.Err)
			continue
		}
		cmd.Printf("  %-28s %d run(s), avg %.2fs\n",
			row.Model, len(row.Runs), row.AverageTime().Seconds())
	}

	cmd.Printf("  Total: %.2fs\n", eval.Duration().Seconds())
	if result.Report != nil {
		cmd.Printf("  Report: %s\n", result.Report.Path)
	}
}
