// Package memory is an in-process TrendingStore. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// Store keeps entries in a map keyed by ID.
type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.TrendingEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]domain.TrendingEntry)}
}

func (s *Store) TopByCount(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	s.mu.RLock()
	entries := make([]domain.TrendingEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	domain.SortTrending(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) FindByTerm(ctx context.Context, term string) (domain.TrendingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.SearchTerm == term {
			return e, nil
		}
	}
	return domain.TrendingEntry{}, domain.ErrEntryNotFound
}

func (s *Store) Save(ctx context.Context, entry domain.TrendingEntry) error {
	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error { return nil }
