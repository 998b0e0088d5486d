package tui

import (
	"github.com/mmcdole/reel/internal/debounce"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/movies"
)

// DebounceMsg is delivered when the quiet period for a key stroke ends.
type DebounceMsg struct {
	Tag debounce.Tag
}

// MoviesFetchedMsg carries the outcome of a catalog request.
type MoviesFetchedMsg struct {
	Response movies.Response
}

// TrendingLoadedMsg carries the startup trending snapshot.
type TrendingLoadedMsg struct {
	Entries []domain.TrendingEntry
}

// SearchRecordedMsg signals that a trending write finished.
type SearchRecordedMsg struct {
	Term string
}

// TickMsg advances the loading spinner.
type TickMsg struct{}
