package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/debounce"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/movies"
	"github.com/mmcdole/reel/internal/trending"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Focus identifies which pane receives key strokes
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
)

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	MoviesSvc   *movies.Service
	TrendingSvc *trending.Service

	// UI Components
	SearchBar components.SearchBar
	Results   components.ResultList
	Details   *components.Details // nil when closed
	Help      help.Model

	// Data
	Debounce        debounce.State
	Query           domain.QueryResult
	TrendingEntries []domain.TrendingEntry

	// Dimensions
	Width  int
	Height int

	// UI state
	Focus        Focus
	ShowHelp     bool
	SpinnerFrame int
	spinning     bool

	tracker movies.Tracker
	pending movies.Request
	after   Scheduler
	logger  *slog.Logger
}

// NewModel creates a new application model. The initial discover request
// for the empty term is issued here and dispatched by Init.
func NewModel(moviesSvc *movies.Service, trendingSvc *trending.Service, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	m := Model{
		MoviesSvc:   moviesSvc,
		TrendingSvc: trendingSvc,
		SearchBar:   components.NewSearchBar(),
		Results:     components.NewResultList(),
		Help:        h,
		Focus:       FocusSearch,
		after:       tea.Tick,
		logger:      logger,
	}
	m.SearchBar.Focus()

	m.pending = moviesSvc.Begin("")
	m.tracker = m.tracker.Issue(m.pending)
	m.Query = domain.Loading()
	m.spinning = true
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadTrendingCmd(m.TrendingSvc),
		FetchMoviesCmd(m.MoviesSvc, m.pending),
		TickCmd(m.after),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if !m.Query.IsLoading() {
			m.spinning = false
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(m.after)

	case DebounceMsg:
		prev := m.Debounce.Committed
		next, fired := m.Debounce.Fire(msg.Tag)
		m.Debounce = next
		if !fired || next.Committed == prev {
			return m, nil
		}
		cmd := m.issueQuery(next.Committed)
		return m, cmd

	case MoviesFetchedMsg:
		return m.handleMoviesFetched(msg.Response)

	case TrendingLoadedMsg:
		m.TrendingEntries = msg.Entries
		m.refreshHints()
		m.updateLayout()
		return m, nil

	case SearchRecordedMsg:
		m.logger.Debug("search recorded", "term", msg.Term)
		return m, nil
	}

	return m, nil
}

// issueQuery stamps a new request for term and resets the result to loading.
func (m *Model) issueQuery(term string) tea.Cmd {
	m.pending = m.MoviesSvc.Begin(term)
	m.tracker = m.tracker.Issue(m.pending)
	m.Query = domain.Loading()
	m.Results.SetMovies(nil)
	m.Details = nil

	cmds := []tea.Cmd{FetchMoviesCmd(m.MoviesSvc, m.pending)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, TickCmd(m.after))
	}
	return tea.Batch(cmds...)
}

func (m Model) handleMoviesFetched(resp movies.Response) (tea.Model, tea.Cmd) {
	if !m.tracker.Accept(resp) {
		m.logger.Debug("dropping stale response", "seq", resp.Seq, "term", resp.Term)
		return m, nil
	}

	m.Query = resp.Result
	m.Results.SetMovies(resp.Result.Movies)

	ev, ok := resp.Event()
	if !ok {
		return m, nil
	}
	return m, RecordSearchCmd(m.TrendingSvc, ev)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Quit) {
		return m, tea.Quit
	}

	if m.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.ShowHelp = false
		}
		return m, nil
	}

	if m.Details != nil {
		if key.Matches(msg, Keys.Escape, Keys.Details) {
			m.Details = nil
		}
		return m, nil
	}

	if key.Matches(msg, Keys.Focus) {
		cmd := m.toggleFocus()
		return m, cmd
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	if m.Results.IsFilterTyping() {
		cmd := m.Results.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.Filter) && !m.Results.IsFiltering():
		cmd := m.Results.ToggleFilter()
		return m, cmd
	case key.Matches(msg, Keys.Details):
		if movie, ok := m.Results.Selected(); ok {
			d := components.NewDetails(movie, m.TrendingSvc.PosterURL(movie.PosterPath))
			d.SetWidth(m.Width)
			m.Details = &d
		}
		return m, nil
	}

	cmd := m.Results.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	changed, cmd := m.SearchBar.Update(msg)
	if !changed {
		return m, cmd
	}

	var tag debounce.Tag
	m.Debounce, tag = m.Debounce.Type(m.SearchBar.Value())
	m.refreshHints()
	m.updateLayout()
	return m, tea.Batch(cmd, DebounceCmd(m.after, tag))
}

func (m *Model) toggleFocus() tea.Cmd {
	var cmd tea.Cmd
	if m.Focus == FocusSearch {
		m.Focus = FocusResults
		m.SearchBar.Blur()
		m.Results.SetFocused(true)
	} else {
		m.Focus = FocusSearch
		m.Results.SetFocused(false)
		cmd = m.SearchBar.Focus()
	}
	m.updateLayout()
	return cmd
}

func (m *Model) refreshHints() {
	m.SearchBar.SetHints(trending.Suggest(m.TrendingEntries, m.Debounce.Raw, trending.MaxSuggestions))
}
