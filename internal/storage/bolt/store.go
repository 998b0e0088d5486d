// Package bolt stores trending counters in a local BoltDB file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/reel/internal/domain"
)

// Bucket names
var (
	bucketEntries = []byte("trending")       // id -> entryRecord
	bucketTerms   = []byte("trending_terms") // search term -> id
)

// entryRecord is the persisted form of a TrendingEntry.
type entryRecord struct {
	ID         string `json:"id"`
	SearchTerm string `json:"searchTerm"`
	Count      int    `json:"count"`
	PosterURL  string `json:"posterUrl"`
	MovieID    int64  `json:"movieId"`
	Title      string `json:"title,omitempty"`
	UpdatedAt  int64  `json:"updatedAt"`
}

// Store implements domain.TrendingStore using BoltDB.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketEntries, bucketTerms} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) TopByCount(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	var entries []domain.TrendingEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).ForEach(func(k, v []byte) error {
			var rec entryRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding entry %s: %w", k, err)
			}
			entries = append(entries, recordToEntry(rec))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	domain.SortTrending(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) FindByTerm(ctx context.Context, term string) (domain.TrendingEntry, error) {
	var rec entryRecord
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketTerms).Get([]byte(term))
		if id == nil {
			return nil
		}
		v := tx.Bucket(bucketEntries).Get(id)
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return domain.TrendingEntry{}, err
	}
	if !found {
		return domain.TrendingEntry{}, domain.ErrEntryNotFound
	}
	return recordToEntry(rec), nil
}

// Save writes the entry and its term index in one transaction. If the
// entry's term changed, the old index key is dropped.
func (s *Store) Save(ctx context.Context, entry domain.TrendingEntry) error {
	data, err := json.Marshal(entryToRecord(entry))
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket(bucketEntries)
		terms := tx.Bucket(bucketTerms)

		if old := entries.Get([]byte(entry.ID)); old != nil {
			var prev entryRecord
			if json.Unmarshal(old, &prev) == nil && prev.SearchTerm != entry.SearchTerm {
				if err := terms.Delete([]byte(prev.SearchTerm)); err != nil {
					return err
				}
			}
		}

		if err := entries.Put([]byte(entry.ID), data); err != nil {
			return err
		}
		return terms.Put([]byte(entry.SearchTerm), []byte(entry.ID))
	})
}

func entryToRecord(e domain.TrendingEntry) entryRecord {
	var updated int64
	if !e.UpdatedAt.IsZero() {
		updated = e.UpdatedAt.Unix()
	}
	return entryRecord{
		ID:         e.ID,
		SearchTerm: e.SearchTerm,
		Count:      e.Count,
		PosterURL:  e.PosterURL,
		MovieID:    e.MovieID,
		Title:      e.Title,
		UpdatedAt:  updated,
	}
}

func recordToEntry(r entryRecord) domain.TrendingEntry {
	var updated time.Time
	if r.UpdatedAt != 0 {
		updated = time.Unix(r.UpdatedAt, 0).UTC()
	}
	return domain.TrendingEntry{
		ID:         r.ID,
		SearchTerm: r.SearchTerm,
		Count:      r.Count,
		PosterURL:  r.PosterURL,
		MovieID:    r.MovieID,
		Title:      r.Title,
		UpdatedAt:  updated,
	}
}
