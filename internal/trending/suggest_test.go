package trending

import (
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
)

func entriesFor(ts ...string) []domain.TrendingEntry {
	out := make([]domain.TrendingEntry, len(ts))
	for i, t := range ts {
		out[i] = domain.TrendingEntry{ID: t, SearchTerm: t, Count: len(ts) - i}
	}
	return out
}

func TestSuggest(t *testing.T) {
	entries := entriesFor("batman", "bat", "matrix", "Alien")

	tests := []struct {
		name  string
		raw   string
		limit int
		want  []string
	}{
		{"empty input", "", 3, nil},
		{"blank input", "   ", 3, nil},
		{"zero limit", "bat", 0, nil},
		{"exact term is skipped", "bat", 3, []string{"batman"}},
		{"case folded, closest first", "BAT", 3, []string{"bat", "batman"}},
		{"no match", "zzz", 3, []string{}},
		{"subsequence", "aln", 3, []string{"Alien"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(entries, tt.raw, tt.limit))
		})
	}
}

func TestSuggestLimitKeepsRankOrder(t *testing.T) {
	entries := entriesFor("a1", "a2", "a3", "a4")

	assert.Equal(t, []string{"a1", "a2", "a3"}, Suggest(entries, "a", MaxSuggestions))
}

func TestSuggestNoEntries(t *testing.T) {
	assert.Nil(t, Suggest(nil, "bat", MaxSuggestions))
}
