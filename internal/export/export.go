package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sink publishes a titled text document to an external document store and
// returns a link to the published document. It has no interaction with the
// review workflow.
type Sink interface {
	Publish(ctx context.Context, title, content string) (string, error)
}

// DirSink writes documents as markdown files under a store directory. The
// returned link is the file path.
type DirSink struct {
	Dir string
}

// NewDirSink creates a directory-backed sink.
func NewDirSink(dir string) (*DirSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}
	return &DirSink{Dir: dir}, nil
}

func (s *DirSink) Publish(ctx context.Context, title, content string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("document title is required")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(s.Dir, slugify(title)+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return path, nil
}

// slugify turns a document title into a safe file name.
func slugify(title string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "document"
	}
	return slug
}

// HTTPSink posts documents to a remote document-store endpoint. The
// endpoint is expected to answer 2xx with an optional {"link": ...} body.
type HTTPSink struct {
	Endpoint string
	httpCli  *http.Client
}

// NewHTTPSink creates an endpoint-backed sink.
func NewHTTPSink(endpoint string, timeout time.Duration) (*HTTPSink, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("export endpoint is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSink{
		Endpoint: endpoint,
		httpCli:  &http.Client{Timeout: timeout},
	}, nil
}

type publishPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *HTTPSink) Publish(ctx context.Context, title, content string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("document title is required")
	}

	body, err := json.Marshal(publishPayload{Title: title, Content: content})
	if err != nil {
		return "", fmt.Errorf("marshaling document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("publishing document: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("document store error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(respBody, &out); err == nil && out.Link != "" {
		return out.Link, nil
	}
	return s.Endpoint, nil
}
