package review

// Verdict is the outcome of the decision policy.
type Verdict string

const (
	VerdictApproved         Verdict = "approved"
	VerdictChangesRequested Verdict = "changes_requested"
)

// Event maps a verdict to the review event keyword the PR host expects.
func (v Verdict) Event() string {
	switch v {
	case VerdictApproved:
		return "APPROVE"
	case VerdictChangesRequested:
		return "REQUEST_CHANGES"
	default:
		return "COMMENT"
	}
}

// FileStatus describes how a file changed within a pull request.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
)

// FileChange is one changed file in a pull request. Patch is empty for
// binary or oversized files where the host omits the diff.
type FileChange struct {
	Filename    string     `json:"filename"`
	Status      FileStatus `json:"status"`
	Additions   int        `json:"additions"`
	Deletions   int        `json:"deletions"`
	Changes     int        `json:"changes"`
	Patch       string     `json:"patch,omitempty"`
	RawURL      string     `json:"raw_url,omitempty"`
	ContentsURL string     `json:"contents_url,omitempty"`
}

// PullRequest is an immutable snapshot of a pull request at fetch time.
// Mergeable defaults to false when the host omits the flag.
type PullRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Author      string       `json:"author"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	State       string       `json:"state"`
	HeadSHA     string       `json:"head_sha"`
	Mergeable   bool         `json:"mergeable"`
	Changes     []FileChange `json:"changes"`
}

// Finding is one flagged line surfaced by a scanner.
type Finding struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Decision is the decision policy's verdict with its rendered review body.
// Verdict is VerdictChangesRequested iff Findings is non-empty.
type Decision struct {
	Verdict  Verdict   `json:"verdict"`
	Body     string    `json:"body"`
	Findings []Finding `json:"findings"`
}

// ReviewComment is an inline comment attached to a diff position.
type ReviewComment struct {
	Path     string `json:"path"`
	Position int    `json:"position"`
	Body     string `json:"body"`
}

// ReviewSubmission is a structured review to post against a head commit.
type ReviewSubmission struct {
	CommitID string
	Body     string
	Event    string
	Comments []ReviewComment
}

// MergeRequest asks the host to merge a pull request.
type MergeRequest struct {
	CommitTitle   string
	CommitMessage string
	Method        string
}

// MergeResult is the host's answer to a merge request. Merged false with a
// non-empty Message means the host refused the merge; transport failures
// surface as errors instead.
type MergeResult struct {
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
	SHA     string `json:"sha,omitempty"`
}

// MergeOutcome describes what happened to the merge step of a run.
type MergeOutcome string

const (
	MergeNotAttempted  MergeOutcome = "not_attempted"
	MergeSkippedConfig MergeOutcome = "skipped_by_configuration"
	MergeNotMergeable  MergeOutcome = "not_mergeable"
	MergeSucceeded     MergeOutcome = "merged"
	MergeFailed        MergeOutcome = "merge_failed"
)

// Result is the final output of one orchestration run. Built incrementally
// during the run and immutable once returned.
type Result struct {
	Status         string       `json:"status"`
	IssuesFound    []string     `json:"issues_found"`
	ApprovalStatus Verdict      `json:"approval_status,omitempty"`
	Merged         bool         `json:"merged"`
	MergeOutcome   MergeOutcome `json:"merge_outcome,omitempty"`
	MergeMessage   string       `json:"merge_message,omitempty"`
	Message        string       `json:"message"`
	ReviewBody     string       `json:"review_body,omitempty"`
	ReviewError    string       `json:"review_error,omitempty"`
	Findings       []Finding    `json:"findings,omitempty"`
}

// ValidMergeMethod reports whether method is one the PR host accepts.
func ValidMergeMethod(method string) bool {
	switch method {
	case "merge", "squash", "rebase":
		return true
	}
	return false
}
