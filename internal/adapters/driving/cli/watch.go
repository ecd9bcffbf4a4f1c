package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driving"
)

var watchSource string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-evaluate when a watched input changes",
	Long: `Watches an input file and re-runs the evaluation whenever it changes.

With --source web the configured URLs file is watched and every URL in
it is evaluated on change. With --source email the mail archive is
watched and the email pipeline runs on change.

Watching continues until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSource, "source", "s", "web", "input to watch: web or email")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	var watch func(context.Context, chan<- driving.WatchEvent) error
	switch watchSource {
	case "web":
		watch = watchService.WatchURLs
	case "email":
		watch = watchService.WatchMail
	default:
		return fmt.Errorf("unknown watch source %q, use web or email", watchSource)
	}

	cmd.Println("Watching for changes. Press Ctrl-C to stop.")

	// The service stops sending once it returns, so closing the channel
	// here lets the printer drain everything before the command exits.
	events := make(chan driving.WatchEvent, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		printWatchEvents(cmd, events)
	}()

	err := watch(cmd.Context(), events)
	close(events)
	<-done

	if errors.Is(err, context.Canceled) {
		cmd.Println("Watch stopped.")
		return nil
	}
	return err
}

// printWatchEvents reports each triggered run until the channel closes.
func printWatchEvents(cmd *cobra.Command, events <-chan driving.WatchEvent) {
	for event := range events {
		if event.Err != nil {
			cmd.Printf("%s changed, run failed: %v\n", event.Trigger, event.Err)
			continue
		}
		cmd.Printf("%s changed, evaluated %d source(s)\n", event.Trigger, len(event.Results))
		for i := range event.Results {
			if event.Results[i].Report != nil {
				cmd.Printf("  Report: %s\n", event.Results[i].Report.Path)
			}
		}
	}
}
