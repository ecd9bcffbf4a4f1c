package driving

import "context"

// ActionService performs result actions on finished reports.
type ActionService interface {
	// OpenReport opens the report at path in the default browser.
	OpenReport(ctx context.Context, path string) error

	// CopyPath copies the report path to the system clipboard.
	CopyPath(ctx context.Context, path string) error
}
