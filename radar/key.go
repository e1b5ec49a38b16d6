package radar

import (
	"strings"
	"time"
)

// leadKeyVersion pins the key format. Bump only with a migration plan: changing
// the format silently re-admits every historical event as "new".
const leadKeyVersion = "v1"

// Location is the optional district/center context an export is ingested under.
type Location struct {
	District string
	Center   string
}

func (l Location) IsZero() bool {
	return l.District == "" && l.Center == ""
}

// LeadKey derives the deduplication identity of one membership event. It is a
// pure function of (timestamp, subject, discriminator, location): the
// discriminator is "organic" for invite-link joins and the actor identifier for
// manual adds. Equal inputs yield byte-identical keys; that equality is the
// store's sole dedup mechanism, so every component is included verbatim.
// Timestamps participate at minute precision, matching what the export carries.
func LeadKey(ts time.Time, subject string, discriminator string, loc Location) string {
	return strings.Join([]string{
		leadKeyVersion,
		ts.Format("2006-01-02T15:04"),
		subject,
		discriminator,
		loc.District,
		loc.Center,
	}, "|")
}
