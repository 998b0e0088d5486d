package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// SearchBar is the query input with trending hints underneath.
type SearchBar struct {
	input textinput.Model
	hints []string
	width int
}

// NewSearchBar creates a focused-ready search input.
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search through thousands of movies"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	// A blinking cursor schedules its own timers on every key stroke.
	ti.Cursor.SetMode(cursor.CursorStatic)

	return SearchBar{input: ti}
}

// Update routes a message to the input. changed reports whether the raw
// text differs afterwards.
func (s *SearchBar) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// Value returns the raw text.
func (s SearchBar) Value() string {
	return s.input.Value()
}

// Focus gives the input keyboard focus.
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus.
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus.
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// SetHints replaces the trending hints shown below the input.
func (s *SearchBar) SetHints(hints []string) {
	s.hints = hints
}

// Hints returns the current hints.
func (s SearchBar) Hints() []string {
	return s.hints
}

// SetWidth updates the rendered width.
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	inner := width - BorderWidth - lipgloss.Width(s.input.Prompt) - 2
	if inner < 10 {
		inner = 10
	}
	s.input.Width = inner
}

func (s SearchBar) View() string {
	style := styles.InactiveBorder
	if s.input.Focused() {
		style = styles.ActiveBorder
	}
	if s.width > 0 {
		style = style.Width(s.width - BorderWidth)
	}

	out := style.Render(s.input.View())
	if len(s.hints) > 0 && s.input.Focused() {
		quoted := make([]string, len(s.hints))
		for i, h := range s.hints {
			quoted[i] = styles.AccentStyle.Render(h)
		}
		out += "\n" + styles.DimStyle.Render(" trending: ") + strings.Join(quoted, styles.DimStyle.Render(" · "))
	}
	return out
}
