// Package movies turns committed search terms into query results.
package movies

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/mmcdole/reel/internal/domain"
)

// TransportMessage is shown for any network or HTTP failure.
const TransportMessage = "Error fetching movies. Please try again later."

// SearchSucceeded is emitted when a non-empty term produced results.
// Movie is the first (highest-ranked) result.
type SearchSucceeded struct {
	Term  string
	Movie domain.Movie
}

// Request is one issued query, tagged with its sequence number.
type Request struct {
	Seq  uint64
	Term string
}

// Response is the outcome of a Request.
type Response struct {
	Request
	Result domain.QueryResult
}

// Event returns the search-succeeded event for this response, if any.
func (r Response) Event() (SearchSucceeded, bool) {
	if r.Term == "" || !r.Result.IsSuccess() || len(r.Result.Movies) == 0 {
		return SearchSucceeded{}, false
	}
	return SearchSucceeded{Term: r.Term, Movie: r.Result.Movies[0]}, true
}

// Service queries the catalog.
type Service struct {
	catalog domain.MovieCatalog
	logger  *slog.Logger
	seq     atomic.Uint64
}

// NewService creates a new movie query service
func NewService(catalog domain.MovieCatalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: catalog, logger: logger}
}

// Begin issues the next sequence number for term.
func (s *Service) Begin(term string) Request {
	return Request{Seq: s.seq.Add(1), Term: term}
}

// Fetch runs req against the catalog. An empty term discovers popular
// movies; anything else searches. Failures are folded into the result.
func (s *Service) Fetch(ctx context.Context, req Request) Response {
	var (
		movies []domain.Movie
		err    error
	)
	if req.Term == "" {
		movies, err = s.catalog.Discover(ctx)
	} else {
		movies, err = s.catalog.Search(ctx, req.Term)
	}

	if err != nil {
		s.logger.Error("fetching movies", "seq", req.Seq, "term", req.Term, "error", err)
		return Response{Request: req, Result: domain.Failed(failureMessage(err))}
	}

	s.logger.Debug("fetched movies", "seq", req.Seq, "term", req.Term, "results", len(movies))
	return Response{Request: req, Result: domain.Succeeded(movies)}
}

// failureMessage picks the user-visible message for err.
func failureMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return TransportMessage
}

// Tracker remembers the latest issued sequence number so stale responses
// can be discarded.
type Tracker struct {
	latest uint64
}

// Issue marks req as the latest request.
func (t Tracker) Issue(req Request) Tracker {
	if req.Seq > t.latest {
		t.latest = req.Seq
	}
	return t
}

// Accept reports whether resp answers the latest request.
func (t Tracker) Accept(resp Response) bool {
	return resp.Seq == t.latest
}
