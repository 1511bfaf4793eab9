package output

import (
	"fmt"
	"io"

	"github.com/dshills/autoreview/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *review.Result) error {
	fmt.Fprintf(w, "## Automated PR Review\n\n")

	if result.Status == "error" {
		fmt.Fprintf(w, ":x: **Run failed:** %s\n", result.Message)
		return nil
	}

	fmt.Fprintf(w, "| Field | Value |\n")
	fmt.Fprintf(w, "|-------|-------|\n")
	fmt.Fprintf(w, "| Verdict | %s |\n", result.ApprovalStatus)
	fmt.Fprintf(w, "| Issues | %d |\n", len(result.IssuesFound))
	fmt.Fprintf(w, "| Merged | %v |\n\n", result.Merged)

	if len(result.Findings) > 0 {
		fmt.Fprintf(w, "<details>\n<summary>Flagged lines (%d)</summary>\n\n", len(result.Findings))
		for _, f := range result.Findings {
			fmt.Fprintf(w, "- `%s`: `%s`\n", f.Path, f.Content)
		}
		fmt.Fprintf(w, "\n</details>\n\n")
	} else {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		fmt.Fprintln(w, "")
	}

	if result.ReviewError != "" {
		fmt.Fprintf(w, "> :warning: review submission failed: %s\n\n", result.ReviewError)
	}

	fmt.Fprintf(w, "*%s*\n", result.Message)
	return nil
}
