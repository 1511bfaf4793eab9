package review

import (
	"fmt"
	"strings"
)

// Scanner inspects one file's unified-diff patch and returns flagged
// findings. Implementations must be pure functions of their input: same
// patch, same findings, no I/O. The interface is the seam for swapping in
// stronger analyzers later.
type Scanner interface {
	Scan(path, patch string) []Finding
}

// MarkerScanner flags added lines whose content contains any of its marker
// substrings. Matching is case-sensitive and exact; removed and context
// lines are never flagged, so a defect introduced and removed within the
// same diff does not surface.
type MarkerScanner struct {
	Markers []string
}

// NewMarkerScanner returns a scanner for the default TODO/FIXME markers.
func NewMarkerScanner() *MarkerScanner {
	return &MarkerScanner{Markers: []string{"TODO", "FIXME"}}
}

// Scan returns one finding per flagged added line, in line order. An empty
// patch (binary file, patch omitted by the host) yields no findings.
func (s *MarkerScanner) Scan(path, patch string) []Finding {
	if patch == "" {
		return nil
	}

	var findings []Finding
	for _, line := range strings.Split(patch, "\n") {
		// Hunk headers, context, and removed lines are skipped.
		if !strings.HasPrefix(line, "+") {
			continue
		}
		content := line[1:]

		for _, marker := range s.Markers {
			if strings.Contains(content, marker) {
				findings = append(findings, Finding{
					Path:        path,
					Content:     content,
					Description: fmt.Sprintf("Found TODO/FIXME in %s at line with content: %s", path, content),
				})
				break
			}
		}
	}
	return findings
}
