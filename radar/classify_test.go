package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine_OrganicJoin(t *testing.T) {
	for _, line := range []string{
		"1/2/24, 3:05 PM - 919900112233 joined using a group link",
		"1/2/24, 3:05 PM - 919900112233 joined via invite link",
	} {
		ev, ok := ClassifyLine(line)
		require.True(t, ok, "line %q", line)
		assert.Equal(t, OrganicJoin, ev.Kind)
		assert.Equal(t, "919900112233", ev.Subject)
	}
}

func TestClassifyLine_ManualAdd(t *testing.T) {
	ev, ok := ClassifyLine("1/2/24, 3:00 PM - Alice Boss added Bob, Carol and Dave")
	require.True(t, ok)
	assert.Equal(t, ManualAdd, ev.Kind)
	assert.Equal(t, "Alice Boss", ev.Actor)
	assert.Equal(t, "Bob, Carol and Dave", ev.Payload)
}

func TestClassifyLine_NoEvent(t *testing.T) {
	lines := []string{
		"1/2/24, 3:05 PM - 919900112233: good morning everyone",
		// "added" only as part of a longer word.
		"1/2/24, 3:05 PM - Bob: the file uploaded fine",
		"1/2/24, 3:05 PM - Messages are end-to-end encrypted",
		"",
	}
	for _, line := range lines {
		_, ok := ClassifyLine(line)
		assert.False(t, ok, "line %q should carry no event", line)
	}
}

func TestClassifyLine_JoinWinsOverAdded(t *testing.T) {
	// A single line matching both phrasings classifies by priority order.
	ev, ok := ClassifyLine("1/2/24, 3:05 PM - 919900112233 joined using a group link and added nobody")
	require.True(t, ok)
	assert.Equal(t, OrganicJoin, ev.Kind)
}
