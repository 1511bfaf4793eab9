// Package output formats run results for display or machine consumption.
//
// Three formats are supported:
//   - text: human-readable terminal output (default)
//   - json: the full structured run result
//   - markdown: PR-comment-friendly summary
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteResult] to handle destination selection (file path or stdout).
package output
