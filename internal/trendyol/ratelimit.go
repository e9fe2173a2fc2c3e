package trendyol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyQuotaExhausted is returned when the daily marketplace call quota
// has been used up.
var ErrDailyQuotaExhausted = errors.New("daily marketplace API quota exhausted")

// RateLimiter throttles marketplace calls with a token bucket and tracks a
// rolling 24-hour quota. The marketplace enforces its own limits upstream;
// staying under them locally avoids burning requests on 429 responses.
type RateLimiter struct {
	bucket   *rate.Limiter
	used     atomic.Int64
	maxDaily int64

	mu      sync.Mutex
	resetAt time.Time
	nowFunc func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the clock for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter builds a limiter with the given per-second rate, burst
// size, and daily quota. The quota window resets 24 hours after it opened.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		bucket:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// Wait blocks until a call is permitted or ctx is canceled. Returns
// ErrDailyQuotaExhausted once the daily quota is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.rollWindow()

	if r.used.Load() >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d)", ErrDailyQuotaExhausted, r.used.Load(), r.maxDaily)
	}

	if err := r.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.used.Add(1)
	return nil
}

// Used returns the number of calls made in the current window.
func (r *RateLimiter) Used() int64 {
	return r.used.Load()
}

// Remaining returns the calls left in the current window.
func (r *RateLimiter) Remaining() int64 {
	left := r.maxDaily - r.used.Load()
	if left < 0 {
		return 0
	}
	return left
}

func (r *RateLimiter) rollWindow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now := r.nowFunc(); now.After(r.resetAt) {
		r.used.Store(0)
		r.resetAt = now.Add(24 * time.Hour)
	}
}
