package driving

import "context"

// WatchEvent reports one completed evaluation during a watch session.
type WatchEvent struct {
	// Trigger names what changed (e.g. the file written to).
	Trigger string

	// Results holds the evaluations run for the change.
	Results []EvaluationResult

	// Err carries the failure when the triggered run failed.
	Err error
}

// WatchService re-runs evaluations when watched inputs change.
type WatchService interface {
	// WatchMail watches the mail archive and evaluates new messages
	// on change. Events are delivered until ctx is cancelled.
	WatchMail(ctx context.Context, events chan<- WatchEvent) error

	// WatchURLs watches the URLs file and evaluates its entries on
	// change. Events are delivered until ctx is cancelled.
	WatchURLs(ctx context.Context, events chan<- WatchEvent) error
}
