// Package highlight rewrites comparison tables so that words unique to a
// single result column are wrapped in <mark> elements.
//
// The input is an HTML document containing a comparison table: each data row
// holds a label cell followed by a fixed number of result cells, one per
// model run. Highlighting is computed per row. Tokens are compared by their
// normalised form (lowercased, punctuation-trimmed); timing annotations of
// the form "(Time: 1.23s)" are treated as opaque noise and never highlighted.
//
// The transformation is pure and total: it performs no I/O, it never fails,
// and rows that do not match the expected cell count are left untouched.
package highlight
