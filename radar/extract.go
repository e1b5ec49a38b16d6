package radar

import (
	"regexp"
	"strings"
)

// Separators in an "added X, Y and Z" clause: commas, and "and" standing alone
// between spaces so it never splits words like "Anand".
var subjectSeparatorRe = regexp.MustCompile(`,|\s+and\s+`)

// SplitSubjects breaks a manual-add payload into individual subject
// identifiers. Pieces are whitespace-trimmed and empty pieces are dropped, so
// trailing separators are harmless. The result may be empty; callers skip
// record creation in that case.
//
// Known limitation inherited from the export format: a single subject whose
// display name itself contains a comma or the standalone word "and" is split
// into multiple subjects. The line format gives no way to tell these apart.
func SplitSubjects(payload string) []string {
	parts := subjectSeparatorRe.Split(payload, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
