// Package html extracts readable text from HTML documents. It strips
// tags, scripts, styles, and decodes entities so that page content can
// be fed to a language model as clean prose.
package html
