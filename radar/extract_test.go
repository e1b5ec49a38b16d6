package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSubjects(t *testing.T) {
	cases := []struct {
		payload string
		want    []string
	}{
		{"Bob, Carol and Dave", []string{"Bob", "Carol", "Dave"}},
		{"Bob", []string{"Bob"}},
		{"Bob and Carol", []string{"Bob", "Carol"}},
		{"919900112233, 919900112234", []string{"919900112233", "919900112234"}},
		// Trailing and doubled separators are harmless.
		{"Bob, Carol,", []string{"Bob", "Carol"}},
		{"Bob,, Carol", []string{"Bob", "Carol"}},
		{"  Bob ,  Carol  ", []string{"Bob", "Carol"}},
		// "and" inside a name must not split it.
		{"Anand Patel", []string{"Anand Patel"}},
		{"Anand and Chandni", []string{"Anand", "Chandni"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tc := range cases {
		got := SplitSubjects(tc.payload)
		if tc.want == nil {
			assert.Empty(t, got, "payload %q", tc.payload)
			continue
		}
		assert.Equal(t, tc.want, got, "payload %q", tc.payload)
	}
}
