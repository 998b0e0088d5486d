package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrEntryNotFound indicates no trending entry exists for a term
	ErrEntryNotFound = errors.New("trending entry not found")

	// ErrAuthFailed indicates the catalog rejected the bearer token
	ErrAuthFailed = errors.New("catalog token is invalid")
)

// TransportError is a network failure or a non-2xx catalog response.
type TransportError struct {
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog transport error: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a well-formed error payload returned by the catalog.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return "catalog api error: " + e.Message }

// TrendingLoadError wraps a failed read of the trending list.
type TrendingLoadError struct {
	Err error
}

func (e *TrendingLoadError) Error() string { return fmt.Sprintf("loading trending: %v", e.Err) }
func (e *TrendingLoadError) Unwrap() error { return e.Err }

// TrendingWriteError wraps a failed trending upsert.
type TrendingWriteError struct {
	Term string
	Err  error
}

func (e *TrendingWriteError) Error() string {
	return fmt.Sprintf("recording search %q: %v", e.Term, e.Err)
}
func (e *TrendingWriteError) Unwrap() error { return e.Err }
