package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	modelsPreload  bool
	modelsValidate bool
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show configured models and backend status",
	Long: `Checks every configured model against its backend and reports
whether it is currently served.

With --validate the backends are pinged and the command fails when one
does not answer. With --preload every model is loaded into backend
memory so the first evaluation run is not billed the load time.`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsPreload, "preload", false, "load every configured model into backend memory")
	modelsCmd.Flags().BoolVar(&modelsValidate, "validate", false, "ping the backends and fail when one is down")
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	if modelService == nil {
		return errors.New("model service not configured")
	}

	if modelsValidate {
		if err := modelService.Validate(cmd.Context()); err != nil {
			return fmt.Errorf("backend validation failed: %w", err)
		}
		cmd.Println("All backends answer.")
	}

	if modelsPreload {
		if err := modelService.Preload(cmd.Context()); err != nil {
			return fmt.Errorf("preload failed: %w", err)
		}
		cmd.Println("All models loaded.")
	}

	if modelsValidate || modelsPreload {
		return nil
	}

	statuses, err := modelService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if len(statuses) == 0 {
		cmd.Println("No models configured.")
		return nil
	}

	cmd.Println("Configured models:")
	for _, status := range statuses {
		state := "available"
		if !status.Available {
			state = "unavailable"
			if status.Detail != "" {
				state += " (" + status.Detail + ")"
			}
		}
		cmd.Printf("  [%s] %-28s %s\n", status.Provider, status.Model, state)
	}

	return nil
}
