// Package normalisers provides content extraction for the source formats
// the evaluator reads. Each subpackage knows how to pull usable text or
// structure out of a specific format: RFC 822 messages, HTML pages, and
// newsletter article listings.
package normalisers
