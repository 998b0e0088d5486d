// Package trending keeps the ranked list of searched movies.
package trending

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/movies"
)

const (
	// Limit is how many entries the trending list shows.
	Limit = 5

	// PosterPlaceholder is stored when a movie has no poster.
	PosterPlaceholder = "/no-movie.png"

	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Service reads and increments trending counters.
type Service struct {
	store        domain.TrendingStore
	imageBaseURL string
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

// NewService creates a new trending service. imageBaseURL prefixes poster
// paths; empty uses the TMDB w500 size.
func NewService(store domain.TrendingStore, imageBaseURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if imageBaseURL == "" {
		imageBaseURL = defaultImageBaseURL
	}
	return &Service{
		store:        store,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Load returns up to Limit entries by count. Failures are logged and
// yield an empty list.
func (s *Service) Load(ctx context.Context) []domain.TrendingEntry {
	entries, err := s.store.TopByCount(ctx, Limit)
	if err != nil {
		s.logger.Error("trending unavailable", "error", &domain.TrendingLoadError{Err: err})
		return []domain.TrendingEntry{}
	}
	if len(entries) > Limit {
		entries = entries[:Limit]
	}
	s.logger.Debug("loaded trending", "count", len(entries))
	return entries
}

// Record increments the counter for term, creating it for movie when absent.
// Terms match exactly; no case folding or trimming is applied.
func (s *Service) Record(ctx context.Context, term string, movie domain.Movie) error {
	entry, err := s.store.FindByTerm(ctx, term)
	switch {
	case err == nil:
		entry.Count++
	case errors.Is(err, domain.ErrEntryNotFound):
		entry = domain.TrendingEntry{
			ID:         s.newID(),
			SearchTerm: term,
			Count:      1,
			MovieID:    movie.ID,
			Title:      movie.Title,
			PosterURL:  s.PosterURL(movie.PosterPath),
		}
	default:
		return &domain.TrendingWriteError{Term: term, Err: err}
	}
	entry.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, entry); err != nil {
		return &domain.TrendingWriteError{Term: term, Err: err}
	}
	s.logger.Debug("recorded search", "term", term, "movieID", entry.MovieID, "count", entry.Count)
	return nil
}

// OnSearchSucceeded records ev and swallows failures after logging them.
func (s *Service) OnSearchSucceeded(ctx context.Context, ev movies.SearchSucceeded) {
	if ev.Term == "" {
		return
	}
	if err := s.Record(ctx, ev.Term, ev.Movie); err != nil {
		s.logger.Warn("search not counted", "term", ev.Term, "error", err)
	}
}

// PosterURL builds the stored poster URL for a poster path.
func (s *Service) PosterURL(posterPath string) string {
	if posterPath == "" {
		return PosterPlaceholder
	}
	return s.imageBaseURL + posterPath
}
