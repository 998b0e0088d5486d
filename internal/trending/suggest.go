package trending

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/domain"
)

// MaxSuggestions caps the number of trending hints shown while typing.
const MaxSuggestions = 3

// Suggest returns up to limit trending search terms that fuzzily match raw,
// closest first. The exact term being typed is never suggested back.
func Suggest(entries []domain.TrendingEntry, raw string, limit int) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(entries) == 0 || limit <= 0 {
		return nil
	}

	terms := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.SearchTerm == raw {
			continue
		}
		if _, ok := seen[e.SearchTerm]; ok {
			continue
		}
		seen[e.SearchTerm] = struct{}{}
		terms = append(terms, e.SearchTerm)
	}

	ranks := fuzzy.RankFindFold(raw, terms)
	// Equal distances keep the count ranking of entries.
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}
