// Package web fetches article text over plain HTTP.
//
// Medium URLs are routed through the Freedium mirror to get at the
// full article body. Fetched pages go through a readability pass: the
// main content container is located, chrome elements are stripped and
// the text of paragraph-level elements is joined into one string.
// Outgoing requests share a politeness rate limiter.
package web
