package oeclassic

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// IndexPath returns the SQLite index sitting beside a .mbx archive.
// OE Classic names it after the mailbox, e.g. 00_Medium.mbx has the
// index 00_Medium.db.
func IndexPath(mbxPath string) string {
	return strings.TrimSuffix(mbxPath, filepath.Ext(mbxPath)) + ".db"
}

// Index reads the mailbox index database maintained by OE Classic.
// The database is owned by the mail client and is opened read-only.
type Index struct {
	db   *sql.DB
	path string
}

// OpenIndex opens the index database at path.
func OpenIndex(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: mailbox index %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking mailbox index: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening mailbox index: %w", err)
	}

	return &Index{db: db, path: path}, nil
}

// Stats returns the message count and the first indexed entry.
func (ix *Index) Stats(ctx context.Context) (driven.MailboxStats, error) {
	var stats driven.MailboxStats

	row := ix.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mbx")
	if err := row.Scan(&stats.TotalMessages); err != nil {
		return driven.MailboxStats{}, fmt.Errorf("counting indexed messages: %w", err)
	}

	row = ix.db.QueryRowContext(ctx, `
		SELECT id, subjectStrip, size, uidl FROM mbx ORDER BY id LIMIT 1
	`)

	var subject, uidl sql.NullString
	var size sql.NullInt64
	if err := row.Scan(&stats.Top.ID, &subject, &size, &uidl); err != nil {
		if err == sql.ErrNoRows {
			// Empty mailbox: count is zero, no top entry.
			return stats, nil
		}
		return driven.MailboxStats{}, fmt.Errorf("scanning top entry: %w", err)
	}

	stats.Top.Subject = subject.String
	stats.Top.Size = size.Int64
	stats.Top.UIDL = uidl.String

	return stats, nil
}

// Path returns the index database file path.
func (ix *Index) Path() string {
	return ix.path
}

// Close closes the database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}
