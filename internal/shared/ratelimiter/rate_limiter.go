// Package ratelimiter paces outbound API calls against per-minute quotas.
package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface limits the frequency of an operation.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter allows at most limit calls per interval, sleeping when the
// quota is spent. Not safe for concurrent use.
type RateLimiter struct {
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a RateLimiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded blocks until the current call fits within the quota.
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Info("rate limit reached, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
