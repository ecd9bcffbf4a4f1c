// Package eml parses RFC 822 email messages into mail messages the
// evaluator can work with. Multipart bodies are walked for their
// text/html and text/plain parts, and quoted-printable and base64
// transfer encodings are decoded.
package eml

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// Parse converts a raw RFC 822 message into a MailMessage.
// Messages without a subject are titled "No Subject". Body parts that
// fail to decode are kept as raw bytes rather than dropped.
func Parse(raw []byte) (driven.MailMessage, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return driven.MailMessage{}, domain.ErrInvalidInput
	}

	out := driven.MailMessage{
		Subject: decodeHeader(msg.Header.Get("Subject")),
		From:    decodeHeader(msg.Header.Get("From")),
	}
	if out.Subject == "" {
		out.Subject = "No Subject"
	}
	if date, dateErr := msg.Header.Date(); dateErr == nil {
		out.Date = date
	}

	collect(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body, &out)

	return out, nil
}

// decodeHeader decodes RFC 2047 encoded headers.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header // Return original if decoding fails
	}
	return decoded
}

// collect walks one body, descending into multipart containers and
// accumulating text/html and text/plain leaf parts on msg.
func collect(contentType, transferEncoding string, r io.Reader, msg *driven.MailMessage) {
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		collectMultipart(r, params["boundary"], msg)
		return
	}

	content := decodeBody(r, transferEncoding)
	switch mediaType {
	case "text/html":
		appendPart(&msg.HTMLBody, string(content))
	case "text/plain":
		appendPart(&msg.TextBody, string(content))
	}
}

// collectMultipart walks the parts of a multipart body.
// The multipart reader decodes quoted-printable parts itself, so each
// part reaches collect with its remaining transfer encoding only.
func collectMultipart(r io.Reader, boundary string, msg *driven.MailMessage) {
	if boundary == "" {
		return
	}

	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		collect(part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"), part, msg)
		part.Close()
	}
}

// decodeBody reads a body applying its transfer encoding.
// Falls back to the raw bytes when decoding fails, matching mail
// clients that render undecodable bodies as-is.
func decodeBody(r io.Reader, transferEncoding string) []byte {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "quoted-printable":
		// Keep the partial output on error. Newsletter bodies are often
		// sloppily encoded and partial text still beats raw soup.
		decoded, qpErr := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
		if qpErr == nil || len(decoded) > 0 {
			return decoded
		}
	case "base64":
		decoded, b64Err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, bytes.NewReader(raw)))
		if b64Err == nil || len(decoded) > 0 {
			return decoded
		}
	}
	return raw
}

// appendPart joins body parts with a newline.
func appendPart(dst *string, part string) {
	if part == "" {
		return
	}
	if *dst == "" {
		*dst = part
		return
	}
	*dst += "\n" + part
}
