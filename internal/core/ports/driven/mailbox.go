package driven

import (
	"context"
	"time"
)

// MailMessage is a single message pulled from a mail archive.
type MailMessage struct {
	// Subject is the decoded Subject header.
	Subject string

	// From is the decoded From header.
	From string

	// Date is the parsed Date header, zero when absent or unparseable.
	Date time.Time

	// HTMLBody is the raw HTML body, empty when the message carries
	// no HTML part.
	HTMLBody string

	// TextBody is the plain text body, empty when absent.
	TextBody string
}

// MailboxEntry describes one row of the mail client's message index.
type MailboxEntry struct {
	// ID is the index row identifier.
	ID int64

	// Subject is the indexed subject line.
	Subject string

	// Size is the stored message size in bytes.
	Size int64

	// UIDL is the server-assigned unique identifier.
	UIDL string
}

// MailboxStats summarises the state of a mail client's message index.
type MailboxStats struct {
	// TotalMessages is the number of indexed messages.
	TotalMessages int64

	// Top is the first entry by index order.
	Top MailboxEntry
}

// MailboxReader reads messages from a local mail client's archive.
type MailboxReader interface {
	// Messages reads up to limit messages starting at the given
	// zero-based archive position, in archive order.
	Messages(ctx context.Context, start, limit int) ([]MailMessage, error)

	// Stats reports index-level statistics from the mail client's
	// message database.
	Stats(ctx context.Context) (MailboxStats, error)
}
