// Package htmlreport renders evaluations as self-contained HTML
// documents and stores them under timestamped names in the output
// directory.
//
// The rendered table keeps the shape the difference highlighter
// expects: a header row, then one row per model holding the model name
// followed by one cell per run. Run cells carry raw markup, so summary
// content and timing annotations pass through untouched.
package htmlreport
