package domain

import (
	"fmt"
	"strings"
)

// Movie is a catalog entry. Only ID, Title and PosterPath are load-bearing;
// the rest feeds the card and details views.
type Movie struct {
	ID               int64
	Title            string
	OriginalTitle    string
	Overview         string
	PosterPath       string
	ReleaseDate      string // YYYY-MM-DD, may be empty
	OriginalLanguage string
	Popularity       float64
	VoteAverage      float64
	VoteCount        int
}

// Year returns the release year or "N/A" when the date is missing.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return "N/A"
	}
	return m.ReleaseDate[:4]
}

// Rating returns the vote average with one decimal, or "N/A" when unrated.
func (m Movie) Rating() string {
	if m.VoteAverage <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// Language returns the upper-cased original language code.
func (m Movie) Language() string {
	if m.OriginalLanguage == "" {
		return "N/A"
	}
	return strings.ToUpper(m.OriginalLanguage)
}

// CardLine returns the secondary line shown under a movie title.
func (m Movie) CardLine() string {
	return fmt.Sprintf("★ %s • %s • %s", m.Rating(), m.Language(), m.Year())
}
