package spotify

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// maxAttempts bounds the request loop across 401 refresh retries,
	// 429 waits and transient network failures.
	maxAttempts = 5

	// defaultRetryAfter is assumed when a 429 carries no usable
	// Retry-After header.
	defaultRetryAfter = 30 * time.Second
)

// call makes one logical API request with retry logic.
//
// It handles:
// - Rate limiter admission before every dispatch
// - Bearer token attachment via the token manager
// - One transparent token refresh on 401
// - Retry-After waits on 429, bounded by the attempt budget
// - Context cancellation
//
// 2xx returns the raw body (nil for 204); every other status maps into the
// error taxonomy: a second 401 is *AuthError, 429 beyond the budget or the
// wait ceiling is *RateLimitError, anything else is *APIError immediately.
func (c *Client) call(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	refreshed := false
	backoff := 1 * time.Second

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, err
		}

		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt).
			Msg("Calling API")

		req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetryNetworkError(err) && attempt < maxAttempts {
				c.logger.Debug().Err(err).Msg("Network error, retrying")
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNoContent:
			return nil, nil

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized:
			if refreshed {
				c.logger.Warn().Str("path", path).Msg("Still unauthorized after token refresh")
				return nil, &AuthError{
					Message: "request unauthorized after token refresh",
					Err:     newAPIError(resp.StatusCode, body),
				}
			}
			refreshed = true
			c.logger.Debug().Str("path", path).Msg("Unauthorized, refreshing token and retrying")
			c.tokens.Invalidate()
			continue

		case resp.StatusCode == http.StatusTooManyRequests:
			retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
			if retryAfter > c.maxRetryAfter {
				c.logger.Warn().
					Dur("retry_after", retryAfter).
					Dur("ceiling", c.maxRetryAfter).
					Msg("Rate limited beyond the wait ceiling")
				return nil, &RateLimitError{RetryAfter: retryAfter}
			}
			lastErr = &RateLimitError{RetryAfter: retryAfter}
			if attempt < maxAttempts {
				c.logger.Warn().
					Dur("retry_after", retryAfter).
					Int("attempt", attempt).
					Msg("Rate limited, honoring Retry-After")
				if !sleep(ctx, retryAfter) {
					return nil, ctx.Err()
				}
				continue
			}
			c.logger.Warn().Str("path", path).Msg("Rate limited beyond the retry budget")
			return nil, lastErr

		default:
			apiErr := newAPIError(resp.StatusCode, body)
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Str("path", path).
				Str("message", apiErr.Message).
				Msg("API request failed")
			return nil, apiErr
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get issues a GET through the gateway.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.call(ctx, http.MethodGet, path, query)
}

// parseRetryAfter reads a Retry-After header value in seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	if urlErr, ok := err.(*url.Error); ok {
		if _, ok := urlErr.Err.(net.Error); ok {
			return true
		}
	}

	return false
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential increase.
// Maximum backoff is capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}

// chunk splits ids into batches of at most size, for the endpoints that
// cap how many ids one request may carry.
func chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	var batches [][]string
	for size < len(ids) {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	return append(batches, ids)
}
