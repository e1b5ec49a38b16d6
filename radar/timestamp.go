package radar

import (
	"regexp"
	"strings"
	"time"
)

// Chat exports prefix every message with "M/D/YY, H:MM AM - ...". Some export
// tools use a narrow no-break space (U+202F) or NBSP instead of a plain space
// after the comma and before the meridiem; the meridiem one may also be absent.
var timestampPrefix = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),[ \x{00a0}\x{202f}](\d{1,2}:\d{2})[ \x{00a0}\x{202f}]?([APap][Mm])`)

var timestampLayouts = []string{
	"1/2/06 3:04 PM",
	"1/2/2006 3:04 PM",
}

// ParseLineTimestamp extracts the leading timestamp of one export line.
// Lines without a structurally valid prefix, and prefixes that name impossible
// dates (month 13, hour 99), both report ok=false; the caller skips the line.
// Timestamps are naive, local to the exporting device, minute precision.
func ParseLineTimestamp(line string) (time.Time, bool) {
	m := timestampPrefix.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	candidate := m[1] + " " + m[2] + " " + strings.ToUpper(m[3])
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, candidate); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
