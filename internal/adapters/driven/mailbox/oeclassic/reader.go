package oeclassic

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sumdiff-cli/internal/logger"
	"github.com/custodia-labs/sumdiff-cli/internal/normalisers/eml"
)

// Ensure Reader implements the interface.
var _ driven.MailboxReader = (*Reader)(nil)

// Reader reads newsletter messages from an OE Classic archive.
type Reader struct {
	mbxPath   string
	indexPath string
}

// NewReader creates a reader for the archive at mbxPath. An empty
// indexPath derives the index from the archive name.
func NewReader(mbxPath, indexPath string) *Reader {
	if indexPath == "" {
		indexPath = IndexPath(mbxPath)
	}
	return &Reader{mbxPath: mbxPath, indexPath: indexPath}
}

// Messages parses messages from the archive in file order. The first
// start messages are skipped; a positive limit caps the result. Records
// that fail to parse are logged and dropped rather than failing the
// whole archive.
func (r *Reader) Messages(ctx context.Context, start, limit int) ([]driven.MailMessage, error) {
	f, err := os.Open(r.mbxPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: email archive %s", domain.ErrNotFound, r.mbxPath)
		}
		return nil, fmt.Errorf("opening email archive: %w", err)
	}
	defer f.Close()

	var messages []driven.MailMessage
	seen := 0

	sc := newRecordScanner(f)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := sc.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading email archive: %w", err)
		}

		msg, perr := eml.Parse(raw)
		if perr != nil {
			logger.Debug("Skipping unparsable mailbox record: %v", perr)
			continue
		}

		seen++
		if seen <= start {
			continue
		}

		messages = append(messages, msg)
		if limit > 0 && len(messages) >= limit {
			break
		}
	}

	logger.Debug("Parsed %d messages from %s", len(messages), r.mbxPath)
	return messages, nil
}

// Stats reports the mailbox statistics from the sibling index database.
func (r *Reader) Stats(ctx context.Context) (driven.MailboxStats, error) {
	ix, err := OpenIndex(r.indexPath)
	if err != nil {
		return driven.MailboxStats{}, err
	}
	defer ix.Close()

	return ix.Stats(ctx)
}

// Path returns the archive file path.
func (r *Reader) Path() string {
	return r.mbxPath
}
