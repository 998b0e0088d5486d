package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/movies"
	"github.com/mmcdole/reel/internal/storage/memory"
	"github.com/mmcdole/reel/internal/trending"
)

type fakeCatalog struct {
	mu        sync.Mutex
	popular   []domain.Movie
	results   map[string][]domain.Movie
	searchErr error
	discovers int
	searches  []string
}

func (f *fakeCatalog) Discover(ctx context.Context) ([]domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discovers++
	return f.popular, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeCatalog) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

// countingStore counts trending writes.
type countingStore struct {
	*memory.Store
	mu    sync.Mutex
	saves int
}

func (s *countingStore) Save(ctx context.Context, e domain.TrendingEntry) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Store.Save(ctx, e)
}

func (s *countingStore) saveCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

var (
	alien         = domain.Movie{ID: 348, Title: "Alien", ReleaseDate: "1979-05-25", OriginalLanguage: "en", VoteAverage: 8.1}
	batman        = domain.Movie{ID: 268, Title: "Batman", PosterPath: "/bat.jpg", Overview: "The Dark Knight of Gotham City begins his war on crime.", ReleaseDate: "1989-06-23", OriginalLanguage: "en", VoteAverage: 7.2}
	batmanReturns = domain.Movie{ID: 364, Title: "Batman Returns", ReleaseDate: "1992-06-19", OriginalLanguage: "en", VoteAverage: 6.9}
)

// immediate delivers scheduled messages without waiting.
func immediate(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
}

func newTestModel(t *testing.T, cat *fakeCatalog, store domain.TrendingStore) Model {
	t.Helper()
	logger := log.NullLogger()
	m := NewModel(
		movies.NewService(cat, logger),
		trending.NewService(store, "", logger),
		logger,
	)
	m.after = immediate
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return run(t, m, m.Init())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// run executes cmd and everything it leads to. Spinner ticks are not
// followed so loading never loops.
func run(t *testing.T, m Model, cmds ...tea.Cmd) Model {
	t.Helper()
	queue := append([]tea.Cmd(nil), cmds...)
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}

		switch msg := cmd().(type) {
		case nil, TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, out := m.Update(msg)
			m = next.(Model)
			queue = append(queue, out)
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends one key stroke per rune and returns the commands they
// produced without running them.
func typeText(t *testing.T, m Model, s string) (Model, []tea.Cmd) {
	t.Helper()
	var cmds []tea.Cmd
	for _, r := range s {
		next, cmd := m.Update(keyRunes(string(r)))
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, cmds
}

func press(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return run(t, next.(Model), cmd)
}

func TestStartupDiscoversPopularMovies(t *testing.T) {
	cat := &fakeCatalog{popular: []domain.Movie{alien, batman}}
	m := newTestModel(t, cat, memory.NewStore())

	assert.Equal(t, 1, cat.discovers)
	assert.Empty(t, cat.searchCalls())
	require.True(t, m.Query.IsSuccess())

	view := m.View()
	assert.Contains(t, view, "All Movies")
	assert.Contains(t, view, "Alien")
	assert.Contains(t, view, "★ 8.1 • EN • 1979")
}

func TestTypingBatSearchesOnceAndRecords(t *testing.T) {
	cat := &fakeCatalog{
		popular: []domain.Movie{alien},
		results: map[string][]domain.Movie{"bat": {batman}},
	}
	store := &countingStore{Store: memory.NewStore()}
	m := newTestModel(t, cat, store)

	m, cmds := typeText(t, m, "bat")
	assert.Equal(t, "bat", m.Debounce.Raw)
	assert.Equal(t, "", m.Debounce.Committed)

	m = run(t, m, cmds...)

	assert.Equal(t, []string{"bat"}, cat.searchCalls())
	assert.Equal(t, "bat", m.Debounce.Committed)
	require.True(t, m.Query.IsSuccess())
	require.Equal(t, 1, m.Results.Len())

	view := m.View()
	assert.Contains(t, view, "Batman")
	assert.NotContains(t, view, "Alien")

	assert.Equal(t, 1, store.saveCalls())
	entry, err := store.FindByTerm(context.Background(), "bat")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Count)
	assert.Equal(t, batman.ID, entry.MovieID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/bat.jpg", entry.PosterURL)
}

func TestAPIErrorShowsMessageAndClearsList(t *testing.T) {
	cat := &fakeCatalog{
		popular:   []domain.Movie{alien},
		searchErr: &domain.APIError{Message: "Invalid API key"},
	}
	store := &countingStore{Store: memory.NewStore()}
	m := newTestModel(t, cat, store)
	require.Equal(t, 1, m.Results.Len())

	m, cmds := typeText(t, m, "bat")
	m = run(t, m, cmds...)

	require.True(t, m.Query.IsFailure())
	assert.Equal(t, 0, m.Results.Len())

	view := m.View()
	assert.Contains(t, view, "Invalid API key")
	assert.NotContains(t, view, "Alien")
	assert.Equal(t, 0, store.saveCalls())
}

func TestTransportErrorShowsGenericMessage(t *testing.T) {
	cat := &fakeCatalog{searchErr: &domain.TransportError{StatusCode: 500}}
	m := newTestModel(t, cat, memory.NewStore())

	m, cmds := typeText(t, m, "x")
	m = run(t, m, cmds...)

	assert.Contains(t, m.View(), movies.TransportMessage)
}

func TestEmptySearchResultsAreNotRecorded(t *testing.T) {
	cat := &fakeCatalog{results: map[string][]domain.Movie{}}
	store := &countingStore{Store: memory.NewStore()}
	m := newTestModel(t, cat, store)

	m, cmds := typeText(t, m, "zzz")
	m = run(t, m, cmds...)

	require.True(t, m.Query.IsSuccess())
	assert.Contains(t, m.View(), "No movies found")
	assert.Equal(t, 0, store.saveCalls())
}

func TestEmptyTrendingStoreRendersNoSection(t *testing.T) {
	m := newTestModel(t, &fakeCatalog{}, memory.NewStore())

	assert.Empty(t, m.TrendingEntries)
	assert.NotContains(t, m.View(), "Trending")
}

func TestTrendingSectionRendersRankedEntries(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Save(ctx, domain.TrendingEntry{ID: "1", SearchTerm: "bat", Title: "Batman", Count: 3, UpdatedAt: now}))
	require.NoError(t, store.Save(ctx, domain.TrendingEntry{ID: "2", SearchTerm: "alien", Count: 1, UpdatedAt: now}))

	m := newTestModel(t, &fakeCatalog{}, store)

	require.Len(t, m.TrendingEntries, 2)
	view := m.View()
	assert.Contains(t, view, "Trending Movies")
	assert.Contains(t, view, " 1. Batman")
	assert.Contains(t, view, "×3")
	assert.Contains(t, view, " 2. alien")
}

func TestTrendingNotRefreshedAfterRecord(t *testing.T) {
	cat := &fakeCatalog{results: map[string][]domain.Movie{"bat": {batman}}}
	m := newTestModel(t, cat, memory.NewStore())

	m, cmds := typeText(t, m, "bat")
	m = run(t, m, cmds...)

	assert.Empty(t, m.TrendingEntries)
	assert.NotContains(t, m.View(), "Trending")
}

func TestStaleResponseIsDropped(t *testing.T) {
	cat := &fakeCatalog{}
	m := newTestModel(t, cat, memory.NewStore())

	m, _ = typeText(t, m, "a")
	m = update(t, m, DebounceMsg{Tag: m.Debounce.Latest()})
	first := m.pending

	m, _ = typeText(t, m, "b")
	m = update(t, m, DebounceMsg{Tag: m.Debounce.Latest()})
	second := m.pending
	require.Greater(t, second.Seq, first.Seq)

	// The older request answers last.
	m = update(t, m, MoviesFetchedMsg{Response: movies.Response{Request: second, Result: domain.Succeeded([]domain.Movie{batmanReturns})}})
	m = update(t, m, MoviesFetchedMsg{Response: movies.Response{Request: first, Result: domain.Succeeded([]domain.Movie{alien})}})

	require.Equal(t, 1, m.Results.Len())
	selected, ok := m.Results.Selected()
	require.True(t, ok)
	assert.Equal(t, "Batman Returns", selected.Title)
}

func TestStaleDebounceTagIsIgnored(t *testing.T) {
	cat := &fakeCatalog{}
	m := newTestModel(t, cat, memory.NewStore())

	m, _ = typeText(t, m, "ab")
	m = update(t, m, DebounceMsg{Tag: m.Debounce.Latest() - 1})

	assert.Equal(t, "", m.Debounce.Committed)
	assert.True(t, m.Query.IsSuccess())
}

func TestUnchangedCommitDoesNotRefetch(t *testing.T) {
	cat := &fakeCatalog{}
	m := newTestModel(t, cat, memory.NewStore())

	m, cmds := typeText(t, m, "b")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(Model)
	cmds = append(cmds, cmd)

	m = run(t, m, cmds...)

	assert.Equal(t, "", m.Debounce.Committed)
	assert.Equal(t, 1, cat.discovers)
	assert.Empty(t, cat.searchCalls())
}

func TestClearingSearchReturnsToDiscover(t *testing.T) {
	cat := &fakeCatalog{
		popular: []domain.Movie{alien},
		results: map[string][]domain.Movie{"b": {batman}},
	}
	m := newTestModel(t, cat, memory.NewStore())

	m, cmds := typeText(t, m, "b")
	m = run(t, m, cmds...)
	require.Equal(t, 1, len(cat.searchCalls()))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = run(t, next.(Model), cmd)

	assert.Equal(t, 2, cat.discovers)
	assert.Contains(t, m.View(), "Alien")
}

func TestLocalFilterNarrowsResults(t *testing.T) {
	cat := &fakeCatalog{popular: []domain.Movie{batman, alien, batmanReturns}}
	m := newTestModel(t, cat, memory.NewStore())

	m = press(t, m, tea.KeyTab)
	require.Equal(t, FocusResults, m.Focus)

	m = update(t, m, keyRunes("/"))
	require.True(t, m.Results.IsFilterTyping())

	m, _ = typeText(t, m, "bat")
	assert.Equal(t, 2, m.Results.Len())
	assert.Equal(t, "bat", m.Results.FilterQuery())
	assert.Empty(t, cat.searchCalls())
	assert.Equal(t, "", m.Debounce.Raw)

	m = press(t, m, tea.KeyEsc)
	assert.False(t, m.Results.IsFiltering())
	assert.Equal(t, 3, m.Results.Len())
}

func TestDetailsPane(t *testing.T) {
	cat := &fakeCatalog{popular: []domain.Movie{batman}}
	m := newTestModel(t, cat, memory.NewStore())

	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyEnter)
	require.NotNil(t, m.Details)

	view := m.View()
	assert.Contains(t, view, "Dark Knight")
	assert.Contains(t, view, "https://image.tmdb.org/t/p/w500/bat.jpg")

	m = press(t, m, tea.KeyEsc)
	assert.Nil(t, m.Details)
}

func TestResultNavigation(t *testing.T) {
	cat := &fakeCatalog{popular: []domain.Movie{batman, alien, batmanReturns}}
	m := newTestModel(t, cat, memory.NewStore())

	m = press(t, m, tea.KeyTab)
	m = update(t, m, keyRunes("j"))
	m = update(t, m, keyRunes("j"))
	m = update(t, m, keyRunes("j"))
	assert.Equal(t, 2, m.Results.Cursor())

	m = update(t, m, keyRunes("g"))
	selected, ok := m.Results.Selected()
	require.True(t, ok)
	assert.Equal(t, "Batman", selected.Title)
}

func TestTrendingHintsWhileTyping(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), domain.TrendingEntry{ID: "1", SearchTerm: "batman", Count: 2, UpdatedAt: time.Now()}))
	m := newTestModel(t, &fakeCatalog{}, store)

	m, _ = typeText(t, m, "bt")
	assert.Equal(t, []string{"batman"}, m.SearchBar.Hints())
	assert.Contains(t, m.View(), "trending: batman")
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, &fakeCatalog{}, memory.NewStore())

	m = press(t, m, tea.KeyTab)
	m = update(t, m, keyRunes("?"))
	require.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "switch focus")

	m = update(t, m, keyRunes("?"))
	assert.False(t, m.ShowHelp)
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, &fakeCatalog{}, memory.NewStore())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewBeforeWindowSize(t *testing.T) {
	logger := log.NullLogger()
	m := NewModel(movies.NewService(&fakeCatalog{}, logger), trending.NewService(memory.NewStore(), "", logger), logger)

	assert.Equal(t, "Loading...", m.View())
}
