package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultRequestTimeout is the whole-request timeout for one attempt.
	DefaultRequestTimeout = 20 * time.Second
	// DefaultRetryBudget bounds the total wall-clock time spent retrying.
	DefaultRetryBudget = 30 * time.Second

	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 8 * time.Second
)

// ErrRateLimited marks an HTTP 429 from a provider. It is retry-eligible
// inside Client; once the retry budget is exhausted it propagates and the
// caller treats it like any other transport failure.
var ErrRateLimited = errors.New("rate limited")

// StatusError is a terminal non-2xx response. It is never retried.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.StatusCode)
}

// transportError wraps a network-level failure so the retry loop can tell
// it apart from terminal errors such as decode failures.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// Client is the shared retrying GET client used by all provider adapters.
// It applies exponential backoff on transport errors and HTTP 429 within a
// fixed wall-clock budget, keeping the retry policy uniform so adapters
// never implement their own.
type Client struct {
	http        *http.Client
	retryBudget time.Duration
}

// NewClient creates a retrying client. If retryBudget is 0 it defaults to
// DefaultRetryBudget.
func NewClient(httpClient *http.Client, retryBudget time.Duration) *Client {
	if retryBudget <= 0 {
		retryBudget = DefaultRetryBudget
	}
	return &Client{http: httpClient, retryBudget: retryBudget}
}

// GetJSON performs a GET against rawURL with the given query parameters and
// headers, retrying retryable failures, and decodes the 2xx JSON body into
// out. The caller's context deadline is honored between and during attempts.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, header http.Header, out any) error {
	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}

	deadline := time.Now().Add(c.retryBudget)
	backoff := initialBackoff

	for {
		err := c.getOnce(ctx, u, header, out)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		// Give up once the next attempt would start past the budget.
		if time.Now().Add(backoff).After(deadline) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// getOnce performs a single request attempt.
func (c *Client) getOnce(ctx context.Context, u string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &transportError{err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, res.Body)
		return fmt.Errorf("http 429: %w", ErrRateLimited)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, res.Body)
		return &StatusError{StatusCode: res.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryable reports whether the retry loop should attempt the call again.
// Context cancellation, terminal statuses and decode failures are final.
func retryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var te *transportError
	return errors.As(err, &te)
}
