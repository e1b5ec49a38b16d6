package radar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineTimestamp_Variants(t *testing.T) {
	cases := []struct {
		line string
		want time.Time
	}{
		{"1/2/24, 3:05 PM - 919900112233 joined using a group link", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
		{"1/2/2024, 3:05 PM - hello", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
		{"12/31/23, 11:59 pm - bye", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)},
		{"1/2/24, 12:00 AM - midnight", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		// No space before the meridiem.
		{"1/2/24, 3:05PM - hi", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
		// Narrow no-break space, as newer export tools emit.
		{"1/2/24, 3:05 PM - hi", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
		// Narrow no-break space after the date comma too.
		{"1/2/24, 3:05 PM - hi", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
		{"1/2/24, 3:05 PM - hi", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
		// Plain NBSP.
		{"1/2/24, 3:05 PM - hi", time.Date(2024, 1, 2, 15, 5, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		ts, ok := ParseLineTimestamp(tc.line)
		require.True(t, ok, "line %q", tc.line)
		assert.Equal(t, tc.want, ts, "line %q", tc.line)
	}
}

func TestParseLineTimestamp_Rejects(t *testing.T) {
	lines := []string{
		"",
		"hello there",
		// Timestamp not at the start of the line.
		"said at 1/2/24, 3:05 PM - hi",
		// Structurally broken clock and meridiem.
		"13/45/99, 99:99 XM - garbage",
		// Structurally fine, semantically impossible date.
		"13/45/99, 9:59 PM - garbage",
		"2/30/24, 3:05 PM - no such day",
		// 24h clock value under a 12h layout.
		"1/2/24, 13:05 PM - bad hour",
	}
	for _, line := range lines {
		_, ok := ParseLineTimestamp(line)
		assert.False(t, ok, "line %q should not parse", line)
	}
}
