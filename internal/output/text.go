package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/autoreview/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	ew.printf("Automated PR Review (status: %s)\n", result.Status)
	ew.println(strings.Repeat("─", 60))

	if result.Status == "error" {
		ew.printf("Error: %s\n", result.Message)
		return ew.err
	}

	ew.printf("Verdict: %s\n", result.ApprovalStatus)
	ew.printf("Issues found: %d\n", len(result.IssuesFound))

	if len(result.Findings) > 0 {
		ew.println(strings.Repeat("─", 60))
		lastPath := ""
		for _, f := range result.Findings {
			if f.Path != lastPath {
				ew.printf("\n%s\n", f.Path)
				lastPath = f.Path
			}
			ew.printf("  %s\n", f.Content)
		}
		ew.println("")
	}

	ew.println(strings.Repeat("─", 60))
	if result.MergeOutcome != "" && result.MergeOutcome != review.MergeNotAttempted {
		ew.printf("Merge: %s\n", result.MergeOutcome)
	}
	if result.ReviewError != "" {
		ew.printf("Review submission failed: %s\n", result.ReviewError)
	}
	ew.printf("%s\n", result.Message)

	return ew.err
}

// errWriter collects the first write error so the happy path reads cleanly.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
