package highlight

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultResultColumns is the number of result cells expected per row when
// no option overrides it, matching the Run 1/2/3 report layout.
const DefaultResultColumns = 3

// Highlighter applies unique-word highlighting to comparison tables.
type Highlighter struct {
	columns int
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithResultColumns sets the number of result cells a qualifying row must
// carry after its label cell. Values below one are ignored.
func WithResultColumns(n int) Option {
	return func(h *Highlighter) {
		if n >= 1 {
			h.columns = n
		}
	}
}

// New creates a Highlighter with the given options.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{columns: DefaultResultColumns}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight parses doc, wraps words unique to a single result column in
// <mark> elements and returns the serialised document. The first table row
// in document order is always treated as a header and skipped. Rows whose
// cell count does not match one label plus the configured result columns
// are left untouched. Highlight never fails: malformed markup is recovered
// by the HTML5 parser and a document without qualifying rows is returned
// serialised but otherwise unchanged.
func (h *Highlighter) Highlight(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return doc
	}

	rows := elementsByTag(root, "tr")
	for i, row := range rows {
		if i == 0 {
			continue // header row
		}
		h.highlightRow(row)
	}

	var out strings.Builder
	if err := html.Render(&out, root); err != nil {
		return doc
	}
	return out.String()
}

// Highlight applies unique-word highlighting with the default column count.
func Highlight(doc string) string {
	return New().Highlight(doc)
}

// highlightRow rewrites the result cells of a single row. Uniqueness is
// scoped to the row: a word is highlighted in a column only when no other
// column of the same row contains it.
func (h *Highlighter) highlightRow(row *html.Node) {
	cells := elementsByTag(row, "td")
	if len(cells) != h.columns+1 {
		return
	}
	results := cells[1:]

	// Classify each run over its raw inner markup so inline formatting is
	// preserved verbatim around words.
	runs := make([][]token, len(results))
	wordColumns := make(map[string]map[int]bool)
	for i, cell := range results {
		runs[i] = classify(tokenize(innerHTML(cell)))
		for _, tok := range runs[i] {
			if tok.word == "" {
				continue
			}
			if wordColumns[tok.word] == nil {
				wordColumns[tok.word] = make(map[int]bool)
			}
			wordColumns[tok.word][i] = true
		}
	}

	for i, cell := range results {
		var rewritten strings.Builder
		for _, tok := range runs[i] {
			if tok.word != "" && len(wordColumns[tok.word]) == 1 {
				rewritten.WriteString("<mark>")
				rewritten.WriteString(tok.text)
				rewritten.WriteString("</mark>")
			} else {
				rewritten.WriteString(tok.text)
			}
		}
		replaceChildren(cell, rewritten.String())
	}
}

// elementsByTag collects all descendant elements with the given tag name in
// document order, the root included.
func elementsByTag(root *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// innerHTML serialises the children of n, preserving markup.
func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// replaceChildren swaps the children of cell for the given markup, parsed
// as a fragment in table-cell context. On a fragment parse failure the cell
// keeps its original content.
func replaceChildren(cell *html.Node, markup string) {
	context := &html.Node{Type: html.ElementNode, Data: "td", DataAtom: atom.Td}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return
	}
	for cell.FirstChild != nil {
		cell.RemoveChild(cell.FirstChild)
	}
	for _, n := range nodes {
		cell.AppendChild(n)
	}
}
