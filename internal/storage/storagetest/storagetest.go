// Package storagetest holds the behaviour every TrendingStore must share.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

// Factory returns an empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) domain.TrendingStore

// Run exercises a store implementation.
func Run(t *testing.T, newStore Factory) {
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, newStore(t)) })
	t.Run("SaveAndFind", func(t *testing.T) { testSaveAndFind(t, newStore(t)) })
	t.Run("SaveReplacesByID", func(t *testing.T) { testSaveReplacesByID(t, newStore(t)) })
	t.Run("FindIsCaseSensitive", func(t *testing.T) { testFindIsCaseSensitive(t, newStore(t)) })
	t.Run("TopByCountOrdersAndLimits", func(t *testing.T) { testTopByCount(t, newStore(t)) })
}

// Entry builds a test entry.
func Entry(id, term string, count int, updated time.Time) domain.TrendingEntry {
	return domain.TrendingEntry{
		ID:         id,
		SearchTerm: term,
		Count:      count,
		PosterURL:  "https://image.tmdb.org/t/p/w500/" + id + ".jpg",
		MovieID:    int64(len(id) + count),
		Title:      "Title " + term,
		UpdatedAt:  updated.UTC().Truncate(time.Second),
	}
}

func testEmptyStore(t *testing.T, s domain.TrendingStore) {
	ctx := context.Background()

	top, err := s.TopByCount(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, top)

	_, err = s.FindByTerm(ctx, "anything")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func testSaveAndFind(t *testing.T, s domain.TrendingStore) {
	ctx := context.Background()
	want := Entry("id-1", "bat", 1, time.Now())

	require.NoError(t, s.Save(ctx, want))

	got, err := s.FindByTerm(ctx, "bat")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.SearchTerm, got.SearchTerm)
	assert.Equal(t, want.Count, got.Count)
	assert.Equal(t, want.PosterURL, got.PosterURL)
	assert.Equal(t, want.MovieID, got.MovieID)
	assert.Equal(t, want.Title, got.Title)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updatedAt %v != %v", got.UpdatedAt, want.UpdatedAt)
}

func testSaveReplacesByID(t *testing.T, s domain.TrendingStore) {
	ctx := context.Background()
	e := Entry("id-1", "heat", 1, time.Now())
	require.NoError(t, s.Save(ctx, e))

	e.Count = 2
	require.NoError(t, s.Save(ctx, e))

	top, err := s.TopByCount(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].Count)
}

func testFindIsCaseSensitive(t *testing.T, s domain.TrendingStore) {
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, Entry("id-upper", "Matrix", 1, time.Now())))

	_, err := s.FindByTerm(ctx, "matrix")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	got, err := s.FindByTerm(ctx, "Matrix")
	require.NoError(t, err)
	assert.Equal(t, "id-upper", got.ID)
}

func testTopByCount(t *testing.T, s domain.TrendingStore) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	counts := []int{3, 9, 1, 7, 7, 2, 5}
	for i, c := range counts {
		id := fmt.Sprintf("id-%d", i)
		require.NoError(t, s.Save(ctx, Entry(id, "term-"+id, c, base.Add(time.Duration(i)*time.Minute))))
	}

	top, err := s.TopByCount(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 5)

	got := make([]int, len(top))
	for i, e := range top {
		got[i] = e.Count
	}
	assert.Equal(t, []int{9, 7, 7, 5, 3}, got)
	// Equal counts: most recently updated first.
	assert.Equal(t, "id-4", top[1].ID)
	assert.Equal(t, "id-3", top[2].ID)
}
