// Package tmdb is a client for the two read endpoints of The Movie Database.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	defaultTimeout = 30 * time.Second
	userAgent      = "Reel/1.0"
	maxBodySize    = 4 << 20
)

// Config configures a Client.
type Config struct {
	Token      string // v4 read access token, sent as a bearer credential
	BaseURL    string
	HTTPClient *http.Client
}

// Client implements domain.MovieCatalog against the TMDB v3 API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      strings.TrimSpace(cfg.Token),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Discover lists movies by descending popularity.
func (c *Client) Discover(ctx context.Context) ([]domain.Movie, error) {
	return c.list(ctx, "/discover/movie", "sort_by=popularity.desc")
}

// Search lists movies matching query. The query is percent-encoded once.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	return c.list(ctx, "/search/movie", "query="+EncodeQuery(query))
}

// EncodeQuery percent-encodes s for use as a query value, with spaces as %20.
func EncodeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (c *Client) list(ctx context.Context, path, rawQuery string) ([]domain.Movie, error) {
	body, err := c.doRequest(ctx, path, rawQuery)
	if err != nil {
		return nil, err
	}

	var resp ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("tmdb parse error", "path", path, "error", err, "bodyLen", len(body))
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if msg, ok := resp.APIErrorMessage(); ok {
		c.logger.Warn("tmdb api error", "path", path, "message", msg)
		return nil, &domain.APIError{Message: msg}
	}

	return MapMovies(resp.Results), nil
}

// doRequest performs an authenticated GET and returns the body of a 2xx response.
func (c *Client) doRequest(ctx context.Context, path, rawQuery string) ([]byte, error) {
	reqURL := c.baseURL + path
	if rawQuery != "" {
		reqURL += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "query", rawQuery)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "body", truncate(string(body), 512))
		cause := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized {
			cause = errors.Join(domain.ErrAuthFailed, cause)
		}
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Err: cause}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
