package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveURL verifies each supported URL shape
func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"problemset", "https://codeforces.com/problemset/problem/1850/A", "1850A", true},
		{"contest", "https://codeforces.com/contest/1850/problem/B", "1850B", true},
		{"gym", "https://codeforces.com/gym/104114/problem/K", "104114K", true},
		{"contest with query", "https://codeforces.com/contest/4/problem/A?locale=en", "4A", true},
		{"lowercase letter", "https://codeforces.com/contest/4/problem/a", "", false},
		{"blog", "https://codeforces.com/blog/entry/1", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ResolveURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

// TestResolve_FallsBackToName verifies the name fallback
func TestResolve_FallsBackToName(t *testing.T) {
	assert.Equal(t, "1850A", Resolve("https://codeforces.com/problemset/problem/1850/A", "A. To My Critics"))
	assert.Equal(t, "A._To_My_Critics", Resolve("https://example.com/x", "A. To My Critics"))
	assert.Equal(t, "Unknown_Problem", Resolve("", ""), "should never be empty")
}

// TestIsProblemURL verifies Codeforces problem URL detection
func TestIsProblemURL(t *testing.T) {
	assert.True(t, IsProblemURL("https://codeforces.com/problemset/problem/1850/A"))
	assert.True(t, IsProblemURL("https://codeforces.com/gym/100001/problem/C"))
	assert.False(t, IsProblemURL("https://example.com/contest/1850/problem/A"))
	assert.False(t, IsProblemURL("https://codeforces.com/contest/1850"))
}

// TestParseInput verifies the free-text input shapes
func TestParseInput(t *testing.T) {
	tests := []struct {
		input  string
		wantID string
	}{
		{"1850A", "1850A"},
		{"  4A ", "4A"},
		{"https://codeforces.com/contest/1850/problem/C", "1850C"},
		{"1850/D", "1850D"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

// TestParseInput_Unresolvable verifies rejected inputs
func TestParseInput_Unresolvable(t *testing.T) {
	for _, input := range []string{"", "watermelon", "1850a", "https://codeforces.com/blog", "x/A", "1850/AB", "1/2/3", "1850/a", "1850/1", "1850/_"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseInput(input)
			assert.ErrorIs(t, err, ErrUnresolvable)
		})
	}
}

// TestSplitID verifies splitting a canonical id
func TestSplitID(t *testing.T) {
	contest, letter, err := SplitID("104114K")
	require.NoError(t, err)
	assert.Equal(t, "104114", contest)
	assert.Equal(t, "K", letter)

	_, _, err = SplitID("Watermelon")
	assert.ErrorIs(t, err, ErrUnresolvable)
}
