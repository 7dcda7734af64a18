// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/metrics"
	"github.com/tomtom215/viewstats/internal/models"
)

// maxErrorBodySize limits how much of an error response is kept for diagnostics.
const maxErrorBodySize = 64 * 1024 // 64KB

// maxRetryDelay caps a single wait, including server supplied Retry-After values.
const maxRetryDelay = 30 * time.Second

// Endpoint labels used in metrics and logs.
const (
	endpointGenreList = "genre_list"
	endpointSearch    = "search"
)

var (
	// ErrMissingCredential is returned when no API key is configured.
	ErrMissingCredential = errors.New("tmdb api key is not configured")

	// ErrRateLimited is returned when HTTP 429 persists after all retries.
	ErrRateLimited = errors.New("tmdb rate limit exceeded")

	// ErrMalformedResponse is returned when a response lacks the expected list.
	ErrMalformedResponse = errors.New("malformed tmdb response")
)

// StatusError is a non-2xx response other than 429.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// rateLimitError carries the server's requested wait into the retry delay.
type rateLimitError struct {
	retryAfter time.Duration
}

func (e *rateLimitError) Error() string {
	return ErrRateLimited.Error() + " (HTTP 429)"
}

func (e *rateLimitError) Unwrap() error {
	return ErrRateLimited
}

// Client talks to the TMDB v3 API with a bearer token.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	maxRetries     int           // Retries after HTTP 429
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewClient creates a client from the metadata configuration.
func NewClient(cfg *config.TMDBConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries:     maxRetries,
		retryBaseDelay: baseDelay,
	}
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

type genreListResponse struct {
	Genres *[]models.GenreListItem `json:"genres"`
}

type searchResponse struct {
	Results *[]models.SearchResult `json:"results"`
}

// GenreList fetches the genre vocabulary for a media type in lang.
func (c *Client) GenreList(ctx context.Context, media models.MediaType, lang string) ([]models.GenreListItem, error) {
	params := url.Values{}
	params.Set("language", lang)

	var resp genreListResponse
	if err := c.get(ctx, endpointGenreList, "/genre/"+media.CatalogType()+"/list", params, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		return nil, fmt.Errorf("%w: genre list without genres", ErrMalformedResponse)
	}
	return *resp.Genres, nil
}

// Search looks up a title. Results are returned in the order TMDB ranks them.
func (c *Client) Search(ctx context.Context, media models.MediaType, query, lang string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", lang)

	var resp searchResponse
	if err := c.get(ctx, endpointSearch, "/search/"+media.CatalogType(), params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: search without results", ErrMalformedResponse)
	}
	return *resp.Results, nil
}

// get performs a GET and decodes the JSON body into result. HTTP 429 is
// retried with exponential backoff, honoring Retry-After.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, result interface{}) error {
	if c.apiKey == "" {
		return ErrMissingCredential
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	logger := logging.Ctx(ctx)

	var resp *http.Response
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("Authorization", "Bearer "+c.apiKey)

			start := time.Now()
			r, err := c.client.Do(req)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("tmdb %s request failed: %w", endpoint, err))
			}
			metrics.RecordTMDBRequest(endpoint, r.StatusCode, time.Since(start))

			if r.StatusCode == http.StatusTooManyRequests {
				wait := parseRetryAfter(r.Header.Get("Retry-After"), time.Now())
				_ = r.Body.Close() // Retried below
				return &rateLimitError{retryAfter: wait}
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)+1),
		retry.Delay(c.retryBaseDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(func(n uint, err error, cfg *retry.Config) time.Duration {
			var rl *rateLimitError
			if errors.As(err, &rl) && rl.retryAfter > 0 {
				return rl.retryAfter
			}
			return retry.BackOffDelay(n, err, cfg)
		}),
		retry.RetryIf(func(err error) bool {
			var rl *rateLimitError
			return errors.As(err, &rl)
		}),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordTMDBRetry(endpoint)
			logger.Debug().Str("endpoint", endpoint).Uint("attempt", n+1).Err(err).Msg("Retrying TMDB request")
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode tmdb %s response: %w", endpoint, err)
	}
	return nil
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. Zero means the header was absent or unusable.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// readBodyForError reads at most maxErrorBodySize bytes of an error response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
