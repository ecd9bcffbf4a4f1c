package eml

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
)

// message joins header and body lines with CRLF as on the wire.
func message(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestParse_PlainText(t *testing.T) {
	raw := message(
		"From: newsletters@example.com",
		"Subject: Weekly digest",
		"Date: Mon, 10 Feb 2025 09:30:00 +0000",
		"",
		"Plain body line one.",
		"Plain body line two.",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Weekly digest", msg.Subject)
	assert.Equal(t, "newsletters@example.com", msg.From)
	assert.True(t, msg.Date.Equal(time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)))
	assert.Contains(t, msg.TextBody, "Plain body line one.")
	assert.Empty(t, msg.HTMLBody)
}

func TestParse_HTMLOnly(t *testing.T) {
	raw := message(
		"Subject: Styled",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body><p>Hello</p></body></html>",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Contains(t, msg.HTMLBody, "<p>Hello</p>")
	assert.Empty(t, msg.TextBody)
}

func TestParse_EncodedSubject(t *testing.T) {
	raw := message(
		"Subject: =?utf-8?q?Caf=C3=A9_notes?=",
		"",
		"body",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Café notes", msg.Subject)
}

func TestParse_MissingSubject(t *testing.T) {
	raw := message(
		"From: someone@example.com",
		"",
		"body",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "No Subject", msg.Subject)
}

func TestParse_MultipartAlternative(t *testing.T) {
	raw := message(
		"Subject: Both parts",
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"plain version",
		"--b1",
		"Content-Type: text/html",
		"",
		"<p>html version</p>",
		"--b1--",
		"",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Contains(t, msg.TextBody, "plain version")
	assert.Contains(t, msg.HTMLBody, "<p>html version</p>")
}

func TestParse_QuotedPrintableBody(t *testing.T) {
	raw := message(
		"Subject: Encoded",
		"Content-Type: text/html; charset=utf-8",
		"Content-Transfer-Encoding: quoted-printable",
		"",
		"<p>Caf=C3=A9 opening soon</p>",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Contains(t, msg.HTMLBody, "Café opening soon")
}

func TestParse_Base64Part(t *testing.T) {
	raw := message(
		"Subject: Encoded part",
		`Content-Type: multipart/mixed; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/html",
		"Content-Transfer-Encoding: base64",
		"",
		"PHA+ZGVjb2RlZDwvcD4=",
		"--b1--",
		"",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Contains(t, msg.HTMLBody, "<p>decoded</p>")
}

func TestParse_NestedMultipart(t *testing.T) {
	raw := message(
		"Subject: Nested",
		`Content-Type: multipart/mixed; boundary="outer"`,
		"",
		"--outer",
		`Content-Type: multipart/alternative; boundary="inner"`,
		"",
		"--inner",
		"Content-Type: text/plain",
		"",
		"nested plain",
		"--inner--",
		"",
		"--outer",
		"Content-Type: text/html",
		"",
		"<p>outer html</p>",
		"--outer--",
		"",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Contains(t, msg.TextBody, "nested plain")
	assert.Contains(t, msg.HTMLBody, "<p>outer html</p>")
}

func TestParse_UndecodableBodyKeptRaw(t *testing.T) {
	raw := message(
		"Subject: Broken encoding",
		"Content-Type: text/plain",
		"Content-Transfer-Encoding: base64",
		"",
		"!!!",
	)

	msg, err := Parse(raw)
	require.NoError(t, err)

	assert.Contains(t, msg.TextBody, "!!!")
}

func TestParse_InvalidMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "empty", raw: nil},
		{name: "no header separator", raw: []byte("not an email")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
