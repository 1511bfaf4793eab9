package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/dshills/autoreview/internal/review"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// Client issues the remote operations of the review workflow against the
// GitHub REST API. It attaches the bearer token to every request and never
// retries: a failed call surfaces once.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a gateway client from explicit configuration. The
// token is required; apiURL falls back to the public API when empty.
func NewClient(token, apiURL string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		token:   token,
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
	}, nil
}

// prMeta is the wire shape of the pull request metadata response.
// Mergeable is a pointer: GitHub omits or nulls the flag while the merge
// state is being computed, and an absent flag means not mergeable here.
type prMeta struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	State     string `json:"state"`
	Head      struct {
		SHA string `json:"sha"`
	} `json:"head"`
	Mergeable *bool `json:"mergeable"`
}

// FetchPR merges two reads, PR metadata and the changed-file list, into
// one immutable snapshot. A response without a head commit is a data-shape
// error and aborts the fetch.
func (c *Client) FetchPR(ctx context.Context, owner, repo string, number int) (*review.PullRequest, error) {
	metaBody, err := c.get(ctx, c.prURL(owner, repo, number))
	if err != nil {
		return nil, fmt.Errorf("fetching PR metadata: %w", err)
	}
	var meta prMeta
	if err := json.Unmarshal(metaBody, &meta); err != nil {
		return nil, fmt.Errorf("parsing PR metadata: %w", err)
	}
	if meta.Head.SHA == "" {
		return nil, fmt.Errorf("PR #%d response has no head commit", number)
	}

	filesBody, err := c.get(ctx, c.prURL(owner, repo, number)+"/files")
	if err != nil {
		return nil, fmt.Errorf("fetching PR files: %w", err)
	}
	var changes []review.FileChange
	if err := json.Unmarshal(filesBody, &changes); err != nil {
		return nil, fmt.Errorf("parsing PR files: %w", err)
	}

	pr := &review.PullRequest{
		Title:       meta.Title,
		Description: meta.Body,
		Author:      meta.User.Login,
		CreatedAt:   meta.CreatedAt,
		UpdatedAt:   meta.UpdatedAt,
		State:       meta.State,
		HeadSHA:     meta.Head.SHA,
		Changes:     changes,
	}
	if meta.Mergeable != nil {
		pr.Mergeable = *meta.Mergeable
	}
	return pr, nil
}

type reviewPayload struct {
	CommitID string                 `json:"commit_id"`
	Body     string                 `json:"body"`
	Event    string                 `json:"event"`
	Comments []review.ReviewComment `json:"comments,omitempty"`
}

// SubmitReview posts a pull request review against the given head commit.
func (c *Client) SubmitReview(ctx context.Context, owner, repo string, number int, sub review.ReviewSubmission) error {
	payload := reviewPayload{
		CommitID: sub.CommitID,
		Body:     sub.Body,
		Event:    sub.Event,
		Comments: sub.Comments,
	}
	if err := c.send(ctx, "POST", c.prURL(owner, repo, number)+"/reviews", payload, nil); err != nil {
		return fmt.Errorf("posting review: %w", err)
	}
	return nil
}

type mergePayload struct {
	CommitTitle   string `json:"commit_title,omitempty"`
	CommitMessage string `json:"commit_message,omitempty"`
	MergeMethod   string `json:"merge_method,omitempty"`
}

type mergeResponse struct {
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
	SHA     string `json:"sha"`
}

// SubmitMerge asks GitHub to merge the pull request. A non-2xx response
// with a parseable body is a merge refusal and comes back as an unmerged
// MergeResult carrying the upstream message; transport failures and
// unreadable responses are errors.
func (c *Client) SubmitMerge(ctx context.Context, owner, repo string, number int, mreq review.MergeRequest) (*review.MergeResult, error) {
	payload := mergePayload{
		CommitTitle:   mreq.CommitTitle,
		CommitMessage: mreq.CommitMessage,
		MergeMethod:   mreq.Method,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling merge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", c.prURL(owner, repo, number)+"/merge", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("merging PR: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading merge response: %w", err)
	}

	var mr mergeResponse
	if err := json.Unmarshal(respBody, &mr); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if resp.StatusCode == http.StatusOK {
		msg := mr.Message
		if msg == "" {
			msg = "Pull Request successfully merged"
		}
		return &review.MergeResult{Merged: true, Message: msg, SHA: mr.SHA}, nil
	}

	msg := mr.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return &review.MergeResult{Merged: false, Message: msg}, nil
}

type commentPayload struct {
	CommitID string `json:"commit_id"`
	Path     string `json:"path"`
	Position int    `json:"position"`
	Body     string `json:"body"`
}

// SubmitInlineComment attaches one comment to one diff position. It is a
// lower-level primitive independent of the review decision.
func (c *Client) SubmitInlineComment(ctx context.Context, owner, repo string, number int, commitID, filename string, position int, body string) error {
	payload := commentPayload{
		CommitID: commitID,
		Path:     filename,
		Position: position,
		Body:     body,
	}
	if err := c.send(ctx, "POST", c.prURL(owner, repo, number)+"/comments", payload, nil); err != nil {
		return fmt.Errorf("creating inline comment: %w", err)
	}
	return nil
}

func (c *Client) prURL(owner, repo string, number int) string {
	return fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.apiURL, owner, repo, number)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if req.Method != "GET" {
		req.Header.Set("Content-Type", "application/json")
	}
}

// get issues an authenticated GET and returns the body for 200 responses;
// anything else becomes an *APIError.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
	}
	return body, nil
}

// send issues an authenticated request with a JSON payload, optionally
// decoding the 2xx response into out.
func (c *Client) send(ctx context.Context, method, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: upstreamMessage(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// upstreamMessage pulls the message field out of a GitHub error body,
// falling back to the raw body.
func upstreamMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
