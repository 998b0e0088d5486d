package domain

import (
	"context"
	"sort"
	"time"
)

// TrendingEntry counts how often a search term led to a movie.
// Entries are owned by the TrendingStore; the app only caches the top N.
type TrendingEntry struct {
	ID         string // store record id
	SearchTerm string // exact, case-sensitive key
	Count      int
	PosterURL  string
	MovieID    int64
	Title      string
	UpdatedAt  time.Time
}

// Label returns what the trending list shows for the entry.
func (e TrendingEntry) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.SearchTerm
}

// TrendingStore is the remote counter store.
type TrendingStore interface {
	// TopByCount returns up to limit entries ordered by Count descending.
	TopByCount(ctx context.Context, limit int) ([]TrendingEntry, error)

	// FindByTerm returns the entry whose SearchTerm equals term exactly,
	// or ErrEntryNotFound.
	FindByTerm(ctx context.Context, term string) (TrendingEntry, error)

	// Save creates or replaces the entry with the given ID.
	Save(ctx context.Context, entry TrendingEntry) error

	Close() error
}

// SortTrending orders entries by Count descending, then most recently
// updated, then by term so the order is stable.
func SortTrending(entries []TrendingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.SearchTerm < b.SearchTerm
	})
}
