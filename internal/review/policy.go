package review

import "strings"

const (
	bodyHeader       = "## Automated Review Results\n\n"
	bodyApproved     = "No issues found! This PR looks good to merge."
	bodyNeedsChanges = "Some issues were found during the automated review:\n\n"
)

// Decide turns accumulated findings into a review decision. The verdict is
// changes_requested iff findings is non-empty. Rendering is deterministic:
// the same findings in the same order produce a byte-identical body, one
// bullet per finding in discovery order.
func Decide(findings []Finding) Decision {
	var b strings.Builder
	b.WriteString(bodyHeader)

	if len(findings) == 0 {
		b.WriteString(bodyApproved)
		return Decision{
			Verdict:  VerdictApproved,
			Body:     b.String(),
			Findings: nil,
		}
	}

	b.WriteString(bodyNeedsChanges)
	for _, f := range findings {
		b.WriteString("- ")
		b.WriteString(f.Description)
		b.WriteString("\n")
	}

	return Decision{
		Verdict:  VerdictChangesRequested,
		Body:     b.String(),
		Findings: findings,
	}
}
