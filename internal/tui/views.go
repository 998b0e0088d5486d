package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const (
	tagline       = "Find Movies You'll Enjoy Without the Hassle"
	trendingTitle = "Trending Movies"
	moviesTitle   = "All Movies"
)

func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderHeader(), m.SearchBar.View()}
	if trending := m.renderTrending(); trending != "" {
		sections = append(sections, trending)
	}
	sections = append(sections, m.renderMovies())

	body := strings.Join(sections, "\n")
	footer := m.renderFooter()

	// Pin the footer to the last line
	if gap := m.Height - lipgloss.Height(body) - lipgloss.Height(footer); gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

func (m Model) renderHeader() string {
	return styles.BrandStyle.Render("reel") + "  " + styles.SubtitleStyle.Render(tagline)
}

// renderTrending renders the ranked trending list, or nothing when the
// store had no entries at startup.
func (m Model) renderTrending() string {
	if len(m.TrendingEntries) == 0 {
		return ""
	}

	lines := []string{styles.SectionStyle.Render(trendingTitle)}
	for i, e := range m.TrendingEntries {
		lines = append(lines, RenderTrendingRow(i+1, e, m.Width))
	}
	return strings.Join(lines, "\n")
}

// RenderTrendingRow renders one ranked trending entry.
func RenderTrendingRow(rank int, e domain.TrendingEntry, width int) string {
	count := fmt.Sprintf("×%d", e.Count)
	term := ""
	if e.Title != "" && e.Title != e.SearchTerm {
		term = " " + styles.DimStyle.Render(strconv.Quote(e.SearchTerm))
	}

	label := e.Label()
	if width > 0 {
		avail := width - 4 - lipgloss.Width(term) - len(count) - 2
		label = styles.Truncate(label, max(avail, 10))
	}

	return styles.RankStyle.Render(fmt.Sprintf("%2d.", rank)) + " " +
		styles.NormalItemStyle.Render(label) + term + "  " +
		styles.CountStyle.Render(count)
}

func (m Model) renderMovies() string {
	header := styles.SectionStyle.Render(moviesTitle)

	switch {
	case m.Query.IsLoading():
		return header + "\n" + RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.Query.IsFailure():
		return header + "\n" + styles.ErrorStyle.Render(m.Query.Message)
	case m.Details != nil:
		return header + "\n" + m.Details.View()
	default:
		return header + "\n" + m.Results.View()
	}
}

func (m Model) renderFooter() string {
	left := m.Help.ShortHelpView(Keys.ShortHelp())

	var right string
	if m.Results.IsFiltering() && m.Results.FilterQuery() != "" {
		right = styles.DimStyle.Render("filter: ") + styles.AccentStyle.Render(m.Results.FilterQuery())
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	content := styles.TitleStyle.Render("Keys") + "\n\n" +
		m.Help.FullHelpView(Keys.FullHelp()) + "\n\n" +
		styles.DimStyle.Render("Press ? or esc to return")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.DetailsStyle.Padding(1, 2).Render(content))
}

// updateLayout resizes components to fit the window.
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}

	m.SearchBar.SetWidth(m.Width)
	if m.Details != nil {
		m.Details.SetWidth(m.Width)
	}

	used := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.SearchBar.View()) +
		lipgloss.Height(styles.SectionStyle.Render(moviesTitle)) +
		1 // footer
	if trending := m.renderTrending(); trending != "" {
		used += lipgloss.Height(trending)
	}
	m.Results.SetSize(m.Width, max(m.Height-used, components.CardHeight+components.ScrollIndicatorLines))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.AccentStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
