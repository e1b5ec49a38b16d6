package radar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadKey_Deterministic(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	loc := Location{District: "Patan", Center: "Adiya"}

	k1 := LeadKey(ts, "919900112233", "Alice Boss", loc)
	k2 := LeadKey(ts, "919900112233", "Alice Boss", loc)
	assert.Equal(t, k1, k2)

	// Seconds do not participate; the export carries minute precision.
	k3 := LeadKey(ts.Add(30*time.Second), "919900112233", "Alice Boss", loc)
	assert.Equal(t, k1, k3)
}

func TestLeadKey_DiffersPerComponent(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	loc := Location{District: "Patan", Center: "Adiya"}
	base := LeadKey(ts, "sub", "disc", loc)

	assert.NotEqual(t, base, LeadKey(ts.Add(time.Minute), "sub", "disc", loc))
	assert.NotEqual(t, base, LeadKey(ts, "other", "disc", loc))
	assert.NotEqual(t, base, LeadKey(ts, "sub", organicDiscriminator, loc))
	assert.NotEqual(t, base, LeadKey(ts, "sub", "disc", Location{District: "Kutch", Center: "Adesar"}))
	assert.NotEqual(t, base, LeadKey(ts, "sub", "disc", Location{}))
}
