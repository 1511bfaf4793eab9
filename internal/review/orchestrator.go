package review

import (
	"context"
	"fmt"
)

// Gateway issues the remote operations the orchestrator needs against the
// PR host. Implementations attach credentials and translate non-2xx
// responses; they do not retry.
type Gateway interface {
	FetchPR(ctx context.Context, owner, repo string, number int) (*PullRequest, error)
	SubmitReview(ctx context.Context, owner, repo string, number int, sub ReviewSubmission) error
	SubmitMerge(ctx context.Context, owner, repo string, number int, req MergeRequest) (*MergeResult, error)
}

// Request identifies one pull request to review and how to handle the
// merge step. MergeMethod defaults to "merge" when empty.
type Request struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	Number      int    `json:"pr_number"`
	AutoMerge   bool   `json:"auto_merge"`
	MergeMethod string `json:"merge_method"`
}

// Orchestrator runs the review workflow: fetch the PR, scan each changed
// file, decide, submit the review, and conditionally merge. One call to
// Run is one self-contained pipeline over freshly fetched data; nothing is
// persisted across runs.
type Orchestrator struct {
	gateway Gateway
	scanner Scanner
}

// New creates an orchestrator. A nil scanner gets the default marker scanner.
func New(gateway Gateway, scanner Scanner) *Orchestrator {
	if scanner == nil {
		scanner = NewMarkerScanner()
	}
	return &Orchestrator{gateway: gateway, scanner: scanner}
}

// Run executes one review. Per-run failures are reported in the returned
// Result, never as a panic or process exit. A completed review submission
// is not rolled back when a later merge fails.
func (o *Orchestrator) Run(ctx context.Context, req Request) Result {
	if req.MergeMethod == "" {
		req.MergeMethod = "merge"
	}
	if !ValidMergeMethod(req.MergeMethod) {
		return errorResult(fmt.Sprintf("invalid merge method %q: must be merge, squash, or rebase", req.MergeMethod))
	}

	pr, err := o.gateway.FetchPR(ctx, req.Owner, req.Repo, req.Number)
	if err != nil {
		return errorResult(fmt.Sprintf("fetching pull request: %v", err))
	}

	// Files without a patch (binary or oversized) are skipped silently.
	var findings []Finding
	for _, change := range pr.Changes {
		if change.Patch == "" {
			continue
		}
		findings = append(findings, o.scanner.Scan(change.Filename, change.Patch)...)
	}

	decision := Decide(findings)

	result := Result{
		Status:         "success",
		IssuesFound:    issueList(decision.Findings),
		ApprovalStatus: decision.Verdict,
		MergeOutcome:   MergeNotAttempted,
		ReviewBody:     decision.Body,
		Findings:       decision.Findings,
	}

	// The verdict is already computed, so a failed submission is recorded
	// but does not abort merge evaluation.
	err = o.gateway.SubmitReview(ctx, req.Owner, req.Repo, req.Number, ReviewSubmission{
		CommitID: pr.HeadSHA,
		Body:     decision.Body,
		Event:    decision.Verdict.Event(),
	})
	if err != nil {
		result.ReviewError = fmt.Sprintf("submitting review: %v", err)
	}

	if decision.Verdict == VerdictChangesRequested {
		result.Message = "Changes requested, PR not approved"
		return result
	}

	switch {
	case !req.AutoMerge:
		result.MergeOutcome = MergeSkippedConfig
		result.Message = "PR approved, but automatic merge is disabled"
	case !pr.Mergeable:
		result.MergeOutcome = MergeNotMergeable
		result.Message = "PR approved but not mergeable. Check for conflicts."
	default:
		o.merge(ctx, req, pr, &result)
	}

	return result
}

func (o *Orchestrator) merge(ctx context.Context, req Request, pr *PullRequest, result *Result) {
	mergeReq := MergeRequest{
		CommitTitle:   fmt.Sprintf("Merge PR #%d: %s", req.Number, pr.Title),
		CommitMessage: "Automatically merged after passing automated review.",
		Method:        req.MergeMethod,
	}

	mr, err := o.gateway.SubmitMerge(ctx, req.Owner, req.Repo, req.Number, mergeReq)
	if err != nil {
		result.MergeOutcome = MergeFailed
		result.MergeMessage = err.Error()
		result.Message = fmt.Sprintf("PR approved but merge failed: %v", err)
		return
	}

	result.Merged = mr.Merged
	result.MergeMessage = mr.Message
	if mr.Merged {
		result.MergeOutcome = MergeSucceeded
		result.Message = fmt.Sprintf("PR approved and merged: %s", mr.Message)
	} else {
		result.MergeOutcome = MergeFailed
		result.Message = fmt.Sprintf("PR approved but merge failed: %s", mr.Message)
	}
}

func errorResult(msg string) Result {
	return Result{
		Status:       "error",
		IssuesFound:  []string{},
		MergeOutcome: MergeNotAttempted,
		Message:      msg,
	}
}

func issueList(findings []Finding) []string {
	issues := make([]string, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, f.Description)
	}
	return issues
}
