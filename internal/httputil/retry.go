// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil fetches remote documents with backoff on rate limiting.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 and 503 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// ErrUnexpectedStatus is returned for non-2xx responses that are not retried
// or that remain after retries are exhausted.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Fetch GETs url and returns the response body. 429 and 503 responses are
// retried up to maxRetries times (default 3 when maxRetries <= 0), waiting
// for the server's Retry-After seconds when present and otherwise doubling
// RetryBaseDelay each attempt. A cancelled context aborts the wait.
func Fetch(ctx context.Context, client *http.Client, url, userAgent string, maxRetries int) ([]byte, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", url, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", url, err)
			}
			return body, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, url, resp.StatusCode)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff(resp.Header.Get("Retry-After"), attempt)):
		}
	}
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// backoff honours a Retry-After value in seconds and falls back to
// exponential delay.
func backoff(retryAfter string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
