package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/debounce"
	"github.com/mmcdole/reel/internal/movies"
	"github.com/mmcdole/reel/internal/trending"
)

// Command factories for async operations

// spinnerInterval is the delay between spinner frames.
const spinnerInterval = 100 * time.Millisecond

// Scheduler delivers fn's message after d. tea.Tick in production.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// FetchMoviesCmd runs req against the catalog.
func FetchMoviesCmd(svc *movies.Service, req movies.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return MoviesFetchedMsg{Response: svc.Fetch(ctx, req)}
	}
}

// LoadTrendingCmd reads the startup trending snapshot.
func LoadTrendingCmd(svc *trending.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return TrendingLoadedMsg{Entries: svc.Load(ctx)}
	}
}

// RecordSearchCmd hands a search-succeeded event to the trending subscriber.
func RecordSearchCmd(svc *trending.Service, ev movies.SearchSucceeded) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc.OnSearchSucceeded(ctx, ev)
		return SearchRecordedMsg{Term: ev.Term}
	}
}

// DebounceCmd fires tag once the quiet period has passed.
func DebounceCmd(after Scheduler, tag debounce.Tag) tea.Cmd {
	return after(debounce.Delay, func(time.Time) tea.Msg {
		return DebounceMsg{Tag: tag}
	})
}

// TickCmd schedules the next spinner frame.
func TickCmd(after Scheduler) tea.Cmd {
	return after(spinnerInterval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
