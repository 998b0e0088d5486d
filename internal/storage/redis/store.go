// Package redis stores trending counters in Redis.
//
// Layout under a key prefix (default "reel:trending:"):
//
//	entry:<id>   hash with the entry fields
//	term:<term>  string holding the entry id
//	rank         sorted set of ids scored by count
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmcdole/reel/internal/domain"
)

const DefaultPrefix = "reel:trending:"

// Store implements domain.TrendingStore on Redis.
type Store struct {
	client *redis.Client
	prefix string
	owned  bool
}

// NewStore wraps an existing client. Close does not close it.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Open parses url, pings the server and returns a Store that owns the client.
func Open(ctx context.Context, url, prefix string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis not reachable at %s: %w", opts.Addr, err)
	}
	s := NewStore(client, prefix)
	s.owned = true
	return s, nil
}

func (s *Store) entryKey(id string) string  { return s.prefix + "entry:" + id }
func (s *Store) termKey(term string) string { return s.prefix + "term:" + term }
func (s *Store) rankKey() string            { return s.prefix + "rank" }

func (s *Store) TopByCount(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.ZRevRange(ctx, s.rankKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.TrendingEntry{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.entryKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	entries := make([]domain.TrendingEntry, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		e, err := decodeEntry(fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	domain.SortTrending(entries)
	return entries, nil
}

func (s *Store) FindByTerm(ctx context.Context, term string) (domain.TrendingEntry, error) {
	id, err := s.client.Get(ctx, s.termKey(term)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.TrendingEntry{}, domain.ErrEntryNotFound
		}
		return domain.TrendingEntry{}, err
	}

	fields, err := s.client.HGetAll(ctx, s.entryKey(id)).Result()
	if err != nil {
		return domain.TrendingEntry{}, err
	}
	if len(fields) == 0 {
		return domain.TrendingEntry{}, domain.ErrEntryNotFound
	}
	return decodeEntry(fields)
}

func (s *Store) Save(ctx context.Context, entry domain.TrendingEntry) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.entryKey(entry.ID), encodeEntry(entry))
		pipe.Set(ctx, s.termKey(entry.SearchTerm), entry.ID, 0)
		pipe.ZAdd(ctx, s.rankKey(), redis.Z{Score: float64(entry.Count), Member: entry.ID})
		return nil
	})
	return err
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func encodeEntry(e domain.TrendingEntry) map[string]interface{} {
	var updated int64
	if !e.UpdatedAt.IsZero() {
		updated = e.UpdatedAt.Unix()
	}
	return map[string]interface{}{
		"id":         e.ID,
		"searchTerm": e.SearchTerm,
		"count":      e.Count,
		"posterUrl":  e.PosterURL,
		"movieId":    e.MovieID,
		"title":      e.Title,
		"updatedAt":  updated,
	}
}

func decodeEntry(fields map[string]string) (domain.TrendingEntry, error) {
	count, err := strconv.Atoi(fields["count"])
	if err != nil {
		return domain.TrendingEntry{}, fmt.Errorf("decoding count of %s: %w", fields["id"], err)
	}
	movieID, err := strconv.ParseInt(fields["movieId"], 10, 64)
	if err != nil {
		return domain.TrendingEntry{}, fmt.Errorf("decoding movieId of %s: %w", fields["id"], err)
	}
	var updated time.Time
	if ts, err := strconv.ParseInt(fields["updatedAt"], 10, 64); err == nil && ts != 0 {
		updated = time.Unix(ts, 0).UTC()
	}
	return domain.TrendingEntry{
		ID:         fields["id"],
		SearchTerm: fields["searchTerm"],
		Count:      count,
		PosterURL:  fields["posterUrl"],
		MovieID:    movieID,
		Title:      fields["title"],
		UpdatedAt:  updated,
	}, nil
}
