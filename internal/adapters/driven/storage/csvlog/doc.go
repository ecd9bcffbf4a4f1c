// Package csvlog persists extracted newsletter articles as a CSV file.
//
// The log is rewritten in full on every extraction run, so its contents
// always reflect the latest scan over the email archive. Readers index
// columns by header name, which keeps older files with extra columns
// readable.
package csvlog
