package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDirSink_Publish(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDirSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	link, err := sink.Publish(context.Background(), "PR #12 Review: Fix Bug!", "review body")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if link != filepath.Join(dir, "pr-12-review-fix-bug.md") {
		t.Errorf("link = %q", link)
	}

	data, err := os.ReadFile(link)
	if err != nil {
		t.Fatalf("reading published doc: %v", err)
	}
	if string(data) != "review body" {
		t.Errorf("content = %q", data)
	}
}

func TestDirSink_RequiresTitle(t *testing.T) {
	sink, err := NewDirSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sink.Publish(context.Background(), "", "x"); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestNewDirSink_RequiresDir(t *testing.T) {
	if _, err := NewDirSink(""); err == nil {
		t.Error("expected error for empty dir")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"PR #5 -- review", "pr-5-review"},
		{"///", "document"},
		{"MixedCASE42", "mixedcase42"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHTTPSink_Publish(t *testing.T) {
	var got publishPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"link": "https://docs.example.com/d/42"})
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(srv.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	link, err := sink.Publish(context.Background(), "title", "content")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if link != "https://docs.example.com/d/42" {
		t.Errorf("link = %q", link)
	}
	if got.Title != "title" || got.Content != "content" {
		t.Errorf("payload = %+v", got)
	}
}

func TestHTTPSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store full", http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(srv.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sink.Publish(context.Background(), "t", "c"); err == nil || !strings.Contains(err.Error(), "507") {
		t.Errorf("expected status error, got %v", err)
	}
}
