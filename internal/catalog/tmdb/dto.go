package tmdb

import "strings"

// MovieDTO is a movie as returned by /search/movie and /discover/movie.
type MovieDTO struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// ListResponse covers both the paged result list and the error payloads
// the catalog may return in a 2xx body.
type ListResponse struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []MovieDTO `json:"results"`

	// Legacy error shape: {"Response":"False","Error":"..."}
	Response string `json:"Response"`
	Error    string `json:"Error"`

	// Native error shape: {"success":false,"status_code":7,"status_message":"..."}
	Success       *bool  `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

const fallbackErrorMessage = "Failed to fetch movies"

// APIErrorMessage returns the server-provided error message and true when
// the body is an error payload.
func (r ListResponse) APIErrorMessage() (string, bool) {
	if strings.EqualFold(r.Response, "false") {
		if r.Error != "" {
			return r.Error, true
		}
		return fallbackErrorMessage, true
	}
	if r.Success != nil && !*r.Success {
		if r.StatusMessage != "" {
			return r.StatusMessage, true
		}
		return fallbackErrorMessage, true
	}
	return "", false
}
