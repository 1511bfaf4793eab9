package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/autoreview/internal/review"
)

func sampleResult() *review.Result {
	return &review.Result{
		Status:         "success",
		IssuesFound:    []string{"Found TODO/FIXME in a.go at line with content: // TODO x"},
		ApprovalStatus: review.VerdictChangesRequested,
		MergeOutcome:   review.MergeNotAttempted,
		Message:        "Changes requested, PR not approved",
		ReviewBody:     "## Automated Review Results\n\n...",
		Findings: []review.Finding{
			{Path: "a.go", Content: "// TODO x", Description: "Found TODO/FIXME in a.go at line with content: // TODO x"},
		},
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q): %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"status", "issues_found", "approval_status", "merged", "message", "review_body"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON output missing key %q", key)
		}
	}
	if decoded["approval_status"] != "changes_requested" {
		t.Errorf("approval_status = %v", decoded["approval_status"])
	}
}

func TestTextWriter_Success(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "changes_requested") {
		t.Errorf("text output missing verdict: %q", out)
	}
	if !strings.Contains(out, "a.go") || !strings.Contains(out, "// TODO x") {
		t.Errorf("text output missing finding: %q", out)
	}
}

func TestTextWriter_Error(t *testing.T) {
	res := &review.Result{Status: "error", IssuesFound: []string{}, Message: "fetching pull request: HTTP 404"}

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, res); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "HTTP 404") {
		t.Errorf("error output missing message: %q", buf.String())
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "## Automated PR Review") {
		t.Errorf("markdown missing heading: %q", out)
	}
	if !strings.Contains(out, "<details>") {
		t.Errorf("markdown missing collapsible findings: %q", out)
	}
}

func TestMarkdownWriter_Clean(t *testing.T) {
	res := &review.Result{
		Status:         "success",
		IssuesFound:    []string{},
		ApprovalStatus: review.VerdictApproved,
		Merged:         true,
		MergeOutcome:   review.MergeSucceeded,
		Message:        "PR approved and merged: ok",
	}

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, res); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "No issues found") {
		t.Errorf("markdown for a clean run should say so: %q", buf.String())
	}
}
