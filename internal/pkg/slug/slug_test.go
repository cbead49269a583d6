package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Breaking News", "breaking-news"},
		{"mixed case and punctuation", "Go 1.25 Released!", "go-1-25-released"},
		{"repeated separators", "a  --  b", "a-b"},
		{"leading and trailing junk", "  ?Hello, World!  ", "hello-world"},
		{"digits preserved", "Top 10 Stories of 2026", "top-10-stories-of-2026"},
		{"empty string", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Make(tc.input))
		})
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	t.Run("free base is kept", func(t *testing.T) {
		t.Parallel()
		got, err := Unique("election-results", func(string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "election-results", got)
	})

	t.Run("first integer suffix that is free", func(t *testing.T) {
		t.Parallel()
		taken := map[string]bool{
			"election-results":   true,
			"election-results-1": true,
			"election-results-2": true,
		}
		got, err := Unique("election-results", func(s string) (bool, error) {
			return taken[s], nil
		})
		require.NoError(t, err)
		assert.Equal(t, "election-results-3", got)
	})

	t.Run("sequence of colliding titles", func(t *testing.T) {
		t.Parallel()
		taken := map[string]bool{}
		exists := func(s string) (bool, error) { return taken[s], nil }

		var got []string
		for i := 0; i < 3; i++ {
			s, err := Unique("market-update", exists)
			require.NoError(t, err)
			taken[s] = true
			got = append(got, s)
		}
		assert.Equal(t, []string{"market-update", "market-update-1", "market-update-2"}, got)
	})

	t.Run("lookup error is propagated", func(t *testing.T) {
		t.Parallel()
		_, err := Unique("x", func(string) (bool, error) {
			return false, assert.AnError
		})
		assert.Error(t, err)
	})
}
