// Package geocode resolves coordinates to a postal address via a Nominatim
// style reverse-geocoding service, with bounded retry and rate-limit-aware
// backoff.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"civic-reporting/backend/internal/retry"
)

const (
	maxAttempts      = 3
	rateLimitBackoff = 2000 * time.Millisecond
	baseBackoff      = 500 * time.Millisecond
)

// ErrRateLimited classifies an attempt rejected with HTTP 429. The retry
// policy keys its backoff on this classification.
var ErrRateLimited = errors.New("rate limited by geocoding service")

// UnavailableError is returned when all reverse-geocode attempts are
// exhausted. It carries the last underlying error.
type UnavailableError struct {
	Attempts int
	Last     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("reverse geocode unavailable after %d attempts: %v", e.Attempts, e.Last)
}

func (e *UnavailableError) Unwrap() error { return e.Last }

// Resolver calls the external reverse-geocoding service.
type Resolver struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	logger    *log.Logger
	policy    retry.Policy
}

// NewResolver returns a Resolver against the given base URL (e.g.
// https://nominatim.openstreetmap.org). timeout bounds each attempt;
// userAgent is the identifying client tag required by Nominatim's usage
// policy.
func NewResolver(baseURL, userAgent string, timeout time.Duration, logger *log.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		client:    &http.Client{},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logger,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			Backoff:     backoff,
		},
	}
}

// backoff waits a fixed 2000ms after a rate-limited attempt, otherwise
// 500ms × attempt number.
func backoff(attempt int, err error) time.Duration {
	if errors.Is(err, ErrRateLimited) {
		return rateLimitBackoff
	}
	return baseBackoff * time.Duration(attempt)
}

// Resolve reverse-geocodes the coordinates and returns the address mapping
// (locality field name → value). Each attempt is bounded by the resolver
// timeout and an abandoned attempt counts toward the retry budget. When all
// attempts fail, the returned error is an *UnavailableError carrying the last
// underlying failure.
func (r *Resolver) Resolve(ctx context.Context, lat, lng float64) (map[string]string, error) {
	var address map[string]string
	err := retry.Do(ctx, r.policy, func(ctx context.Context, attempt int) error {
		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		addr, err := r.fetch(attemptCtx, lat, lng)
		if err != nil {
			if r.logger != nil {
				r.logger.Printf("geocode attempt %d/%d failed (lat=%v lng=%v): %v", attempt, maxAttempts, lat, lng, err)
			}
			return err
		}
		address = addr
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &UnavailableError{Attempts: maxAttempts, Last: err}
	}
	return address, nil
}

type reverseResponse struct {
	Address map[string]string `json:"address"`
	Message string            `json:"error"`
}

func (r *Resolver) fetch(ctx context.Context, lat, lng float64) (map[string]string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode returned %s", resp.Status)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if body.Message != "" {
		return nil, fmt.Errorf("geocode error: %s", body.Message)
	}
	if len(body.Address) == 0 {
		return nil, errors.New("invalid geocode response: missing address")
	}
	return body.Address, nil
}
