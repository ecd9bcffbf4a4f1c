package oeclassic

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxRecordSize bounds a single message record. Larger mlen values
// are treated as corrupt and the record is skipped.
const maxRecordSize = 64 << 20

// recordScanner walks the framed message records of a .mbx file.
type recordScanner struct {
	r         *bufio.Reader
	exhausted bool
}

func newRecordScanner(r io.Reader) *recordScanner {
	return &recordScanner{r: bufio.NewReader(r)}
}

// next returns the raw bytes of the next message record, or io.EOF
// once the archive is exhausted. Records with bad framing are skipped;
// a record truncated by end of file ends the scan.
func (s *recordScanner) next() ([]byte, error) {
	for {
		if s.exhausted {
			return nil, io.EOF
		}

		line, err := s.r.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}

		if strings.TrimSpace(line) != "[hdr]" {
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}

		msg, ok := s.readRecord()
		if ok {
			return msg, nil
		}
		// Bad framing: resume scanning for the next [hdr] line.
	}
}

// readRecord consumes the mlen, [msg] and body sections that must
// directly follow a [hdr] line.
func (s *recordScanner) readRecord() ([]byte, bool) {
	mlenLine, err := s.r.ReadString('\n')
	if mlenLine == "" && err != nil {
		s.exhausted = true
		return nil, false
	}

	mlenStr := strings.TrimSpace(mlenLine)
	if !strings.HasPrefix(mlenStr, "mlen=") {
		return nil, false
	}

	mlen, perr := strconv.ParseUint(strings.TrimPrefix(mlenStr, "mlen="), 16, 32)
	if perr != nil || mlen == 0 || mlen > maxRecordSize {
		return nil, false
	}

	msgLine, err := s.r.ReadString('\n')
	if msgLine == "" && err != nil {
		s.exhausted = true
		return nil, false
	}
	if strings.TrimSpace(msgLine) != "[msg]" {
		return nil, false
	}

	buf := make([]byte, mlen)
	n, _ := io.ReadFull(s.r, buf)
	if uint64(n) < mlen {
		// Truncated archive: the partial tail cannot be trusted.
		s.exhausted = true
		return nil, false
	}
	return buf, true
}
