package review

import "testing"

func TestScan_EmptyPatch(t *testing.T) {
	s := NewMarkerScanner()
	if got := s.Scan("main.go", ""); got != nil {
		t.Errorf("expected nil findings for empty patch, got %v", got)
	}
}

func TestScan_NoMarkers(t *testing.T) {
	s := NewMarkerScanner()
	patch := "@@ -1,3 +1,4 @@\n context line\n-removed := 1\n+added := 2\n another context"
	if got := s.Scan("main.go", patch); len(got) != 0 {
		t.Errorf("expected no findings, got %d", len(got))
	}
}

func TestScan_OnlyAddedLinesFlagged(t *testing.T) {
	s := NewMarkerScanner()
	// TODO appears on a removed line and a context line; neither counts.
	patch := "@@ -1,3 +1,3 @@\n // TODO context\n-// TODO removed\n+clean := true"
	if got := s.Scan("main.go", patch); len(got) != 0 {
		t.Errorf("removed/context lines must never be flagged, got %v", got)
	}
}

func TestScan_FlagsAddedMarkerLine(t *testing.T) {
	s := NewMarkerScanner()
	patch := "@@ -1,2 +1,3 @@\n func main() {\n+    // TODO fix this\n }"

	got := s.Scan("cmd/main.go", patch)
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(got))
	}
	if got[0].Path != "cmd/main.go" {
		t.Errorf("Path = %q, want %q", got[0].Path, "cmd/main.go")
	}
	if got[0].Content != "    // TODO fix this" {
		t.Errorf("Content = %q, want stripped line content", got[0].Content)
	}
	want := "Found TODO/FIXME in cmd/main.go at line with content:     // TODO fix this"
	if got[0].Description != want {
		t.Errorf("Description = %q, want %q", got[0].Description, want)
	}
}

func TestScan_CaseSensitive(t *testing.T) {
	s := NewMarkerScanner()
	patch := "+// todo lowercase\n+// Fixme mixed"
	if got := s.Scan("a.go", patch); len(got) != 0 {
		t.Errorf("matching must be case-sensitive, got %v", got)
	}
}

func TestScan_SubstringMatch(t *testing.T) {
	s := NewMarkerScanner()
	// No word boundary logic: TODO embedded in a longer token still matches.
	patch := "+var TODOCount int"
	got := s.Scan("a.go", patch)
	if len(got) != 1 {
		t.Fatalf("expected substring match, got %d findings", len(got))
	}
}

func TestScan_MultipleMarkersOnOneLine(t *testing.T) {
	s := NewMarkerScanner()
	patch := "+// TODO and FIXME on the same line"
	if got := s.Scan("a.go", patch); len(got) != 1 {
		t.Errorf("one line yields one finding, got %d", len(got))
	}
}

func TestScan_LineOrderPreserved(t *testing.T) {
	s := NewMarkerScanner()
	patch := "+// TODO first\n clean\n+// FIXME second\n+// TODO third"

	got := s.Scan("a.go", patch)
	if len(got) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(got))
	}
	wants := []string{"// TODO first", "// FIXME second", "// TODO third"}
	for i, w := range wants {
		if got[i].Content != w {
			t.Errorf("finding %d content = %q, want %q", i, got[i].Content, w)
		}
	}
}

func TestScan_Deterministic(t *testing.T) {
	s := NewMarkerScanner()
	patch := "+// FIXME flaky\n+ok\n+// TODO later"

	a := s.Scan("x.go", patch)
	b := s.Scan("x.go", patch)
	if len(a) != len(b) {
		t.Fatalf("scan not deterministic: %d vs %d findings", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("finding %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}
