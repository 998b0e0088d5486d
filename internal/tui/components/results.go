package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants
const (
	BorderWidth          = 2
	ScrollIndicatorLines = 2
	CardHeight           = 2
)

// ResultList shows movie cards with a cursor and an optional local filter.
type ResultList struct {
	movies     []domain.Movie
	cursor     int
	offset     int
	maxVisible int // cards, 0 means unbounded
	width      int
	height     int
	focused    bool

	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      []fuzzy.Match // nil when no query
}

// NewResultList creates an empty result list.
func NewResultList() ResultList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 100
	ti.Width = 30
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.Cursor.SetMode(cursor.CursorStatic)

	return ResultList{filterInput: ti}
}

// SetMovies replaces the list contents. An active filter is reapplied.
func (r *ResultList) SetMovies(movies []domain.Movie) {
	r.movies = movies
	r.cursor = 0
	r.offset = 0
	if r.filterActive {
		r.applyFilter()
	}
}

// Movies returns the unfiltered contents.
func (r ResultList) Movies() []domain.Movie {
	return r.movies
}

// Len returns the number of visible cards.
func (r ResultList) Len() int {
	if r.matches != nil {
		return len(r.matches)
	}
	return len(r.movies)
}

// Selected returns the movie under the cursor.
func (r ResultList) Selected() (domain.Movie, bool) {
	if r.Len() == 0 {
		return domain.Movie{}, false
	}
	return r.movies[r.mapIndex(r.cursor)], true
}

// Cursor returns the cursor position among visible cards.
func (r ResultList) Cursor() int {
	return r.cursor
}

func (r *ResultList) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.recalcMaxVisible()
}

func (r *ResultList) SetFocused(focused bool) {
	r.focused = focused
}

// Update handles navigation and filter typing.
func (r *ResultList) Update(msg tea.Msg) tea.Cmd {
	// Typing into the filter
	if r.IsFilterTyping() {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				r.clearFilter()
				return nil
			case "enter":
				r.filterInput.Blur()
				return nil
			case "backspace":
				if r.filterInput.Value() == "" {
					r.clearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		r.filterInput, cmd = r.filterInput.Update(msg)
		r.applyFilter()
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if r.filterActive {
		switch key.String() {
		case "esc":
			r.clearFilter()
			return nil
		case "/":
			return r.filterInput.Focus()
		}
	}

	count := r.Len()
	if count == 0 {
		return nil
	}

	page := r.maxVisible / 2
	if page < 1 {
		page = 1
	}

	switch key.String() {
	case "j", "down":
		if r.cursor < count-1 {
			r.cursor++
		}
	case "k", "up":
		if r.cursor > 0 {
			r.cursor--
		}
	case "g", "home":
		r.cursor = 0
	case "G", "end":
		r.cursor = count - 1
	case "ctrl+d":
		r.cursor = min(r.cursor+page, count-1)
	case "ctrl+u":
		r.cursor = max(r.cursor-page, 0)
	}
	r.ensureVisible()
	return nil
}

// ToggleFilter activates the filter input
func (r *ResultList) ToggleFilter() tea.Cmd {
	r.filterActive = true
	r.recalcMaxVisible()
	return r.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (r ResultList) IsFiltering() bool {
	return r.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (r ResultList) IsFilterTyping() bool {
	return r.filterActive && r.filterInput.Focused()
}

// FilterQuery returns the applied filter text.
func (r ResultList) FilterQuery() string {
	return r.filterQuery
}

// ClearFilter deactivates the filter and shows all items
func (r *ResultList) ClearFilter() {
	r.clearFilter()
}

func (r *ResultList) recalcMaxVisible() {
	if r.height <= 0 {
		r.maxVisible = 0
		return
	}
	lines := r.height - ScrollIndicatorLines
	if r.filterActive {
		lines--
	}
	r.maxVisible = lines / CardHeight
	if r.maxVisible < 1 {
		r.maxVisible = 1
	}
	r.ensureVisible()
}

func (r *ResultList) ensureVisible() {
	if r.maxVisible <= 0 {
		return
	}
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if r.cursor >= r.offset+r.maxVisible {
		r.offset = r.cursor - r.maxVisible + 1
	}
}

func (r *ResultList) clearFilter() {
	r.filterActive = false
	r.filterQuery = ""
	r.matches = nil
	r.filterInput.SetValue("")
	r.filterInput.Blur()
	r.cursor = 0
	r.offset = 0
	r.recalcMaxVisible()
}

func (r *ResultList) applyFilter() {
	query := r.filterInput.Value()
	r.filterQuery = query
	r.cursor = 0
	r.offset = 0

	if query == "" {
		r.matches = nil
		return
	}

	titles := make([]string, len(r.movies))
	for i, m := range r.movies {
		titles[i] = strings.ToLower(m.Title)
	}
	r.matches = fuzzy.Find(strings.ToLower(query), titles)
	if r.matches == nil {
		r.matches = []fuzzy.Match{}
	}
}

func (r ResultList) mapIndex(i int) int {
	if r.matches != nil && i < len(r.matches) {
		return r.matches[i].Index
	}
	return i
}

func (r ResultList) matchedIndexes(i int) []int {
	if r.matches != nil && i < len(r.matches) {
		return r.matches[i].MatchedIndexes
	}
	return nil
}

func (r ResultList) View() string {
	itemWidth := r.width - 4
	if r.width <= 0 {
		itemWidth = 80
	}
	if itemWidth < 10 {
		itemWidth = 10
	}

	count := r.Len()
	var body string
	if count == 0 {
		if r.filterActive && r.filterQuery != "" {
			body = styles.DimStyle.Render("No matches")
		} else {
			body = styles.DimStyle.Render("No movies found")
		}
	} else {
		end := count
		if r.maxVisible > 0 {
			end = min(r.offset+r.maxVisible, count)
		}

		cards := make([]string, 0, end-r.offset)
		for i := r.offset; i < end; i++ {
			cards = append(cards, r.renderCard(i, itemWidth))
		}

		header := " "
		if r.offset > 0 {
			header = styles.DimStyle.Render("↑ more")
		}
		footer := " "
		if end < count {
			footer = styles.DimStyle.Render("↓ more")
		}
		body = header + "\n" + strings.Join(cards, "\n") + "\n" + footer
	}

	if r.filterActive {
		body += "\n" + r.renderFilterBar()
	}
	return body
}

func (r ResultList) renderCard(i, width int) string {
	movie := r.movies[r.mapIndex(i)]
	selected := r.focused && i == r.cursor

	base := styles.TitleStyle
	hl := styles.MatchHighlightStyle
	marker := "  "
	if selected {
		base = styles.TitleStyle.Background(styles.SlateLight)
		hl = styles.MatchHighlightSelectedStyle
		marker = styles.AccentStyle.Render("▌ ")
	}

	title := styles.Truncate(movie.Title, width-2)
	titleLine := marker + styles.Highlight(title, r.matchedIndexes(i), base, hl)
	infoLine := "  " + styles.SubtitleStyle.Render(movie.CardLine())
	return titleLine + "\n" + infoLine
}

func (r ResultList) renderFilterBar() string {
	input := r.filterInput.View()
	if r.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", r.Len(), len(r.movies)))
}
