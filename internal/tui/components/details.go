package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Details displays the full record of the selected movie.
type Details struct {
	movie     domain.Movie
	posterURL string
	width     int
}

// NewDetails creates a details pane for movie.
func NewDetails(movie domain.Movie, posterURL string) Details {
	return Details{movie: movie, posterURL: posterURL}
}

// SetWidth updates the rendered width.
func (d *Details) SetWidth(width int) {
	d.width = width
}

// Movie returns the displayed movie.
func (d Details) Movie() domain.Movie {
	return d.movie
}

func (d Details) View() string {
	width := d.width
	if width <= 0 {
		width = 80
	}
	inner := width - BorderWidth - 2
	if inner < 20 {
		inner = 20
	}

	m := d.movie
	var lines []string

	lines = append(lines, styles.TitleStyle.Render(styles.Truncate(m.Title, inner)))
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(m.OriginalTitle, inner)))
	}
	lines = append(lines, styles.SubtitleStyle.Render(m.CardLine()))
	if m.VoteCount > 0 {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("%d votes • popularity %.1f", m.VoteCount, m.Popularity)))
	}
	if m.ReleaseDate != "" {
		lines = append(lines, styles.DimStyle.Render("Released "+m.ReleaseDate))
	}

	lines = append(lines, "")
	overview := m.Overview
	if overview == "" {
		overview = "No overview available."
	}
	lines = append(lines, lipgloss.NewStyle().Width(inner).Foreground(styles.LightGray).Render(overview))

	lines = append(lines, "")
	lines = append(lines, styles.DimStyle.Render("Poster ")+styles.AccentStyle.Render(d.posterURL))

	return styles.DetailsStyle.Width(width - BorderWidth).Render(strings.Join(lines, "\n"))
}
