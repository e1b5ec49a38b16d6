package radar

import (
	"regexp"
	"strings"
)

// The two join phrasings cover the two export-tool variants seen in the field.
var (
	organicMarkers = []string{"joined using a group link", "joined via invite link"}

	joinSubjectRe = regexp.MustCompile(`-\s(.*?)\sjoined`)
	addedSplitRe  = regexp.MustCompile(`-\s(.*?)\sadded\s(.*)`)
)

// Classified is the raw result of classifying one timestamp-bearing line.
// For an organic join Subject is set; for a manual add Actor and Payload are
// set and the payload still needs SplitSubjects.
type Classified struct {
	Kind    EventKind
	Subject string
	Actor   string
	Payload string
}

// ClassifyLine decides whether a line describes a membership event. The checks
// are a priority list, not a grammar: organic-join markers first, then the
// space-delimited " added " clause. Anything else (ordinary chat messages) is
// not an event; that is the common case and is silently fine.
func ClassifyLine(line string) (Classified, bool) {
	for _, marker := range organicMarkers {
		if !strings.Contains(line, marker) {
			continue
		}
		m := joinSubjectRe.FindStringSubmatch(line)
		if m == nil {
			return Classified{}, false
		}
		return Classified{Kind: OrganicJoin, Subject: strings.TrimSpace(m[1])}, true
	}
	if strings.Contains(line, " added ") {
		m := addedSplitRe.FindStringSubmatch(line)
		if m == nil {
			return Classified{}, false
		}
		return Classified{
			Kind:    ManualAdd,
			Actor:   strings.TrimSpace(m[1]),
			Payload: strings.TrimSpace(m[2]),
		}, true
	}
	return Classified{}, false
}
