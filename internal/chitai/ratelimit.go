package chitai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrQuotaExhausted is returned when the request quota for the current
// window has been used up.
var ErrQuotaExhausted = errors.New("request quota exhausted")

// RateLimiter paces requests to the site API. It combines a token bucket
// for per-second pacing with a request quota over a rolling window, which
// keeps long monitor sessions from hammering a third-party storefront.
type RateLimiter struct {
	limiter     *rate.Limiter
	used        atomic.Int64
	maxRequests int64
	window      time.Duration
	resetAt     time.Time
	mu          sync.Mutex
	nowFunc     func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size and a quota of maxRequests per window. The window starts at
// construction and rolls over lazily on the first call after it expires.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxRequests int64,
	window time.Duration,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:     rate.NewLimiter(rate.Limit(perSecond), burst),
		maxRequests: maxRequests,
		window:      window,
		nowFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(window)
	return r
}

// Wait blocks until the limiter allows the call, or the context is
// canceled. Returns ErrQuotaExhausted if the window quota is used up. The
// quota slot is taken before waiting on the token bucket and handed back if
// the wait fails.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.checkReset()

	if !r.reserve() {
		return fmt.Errorf("%w (%d/%d)", ErrQuotaExhausted, r.used.Load(), r.maxRequests)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	return nil
}

func (r *RateLimiter) reserve() bool {
	for {
		n := r.used.Load()
		if n >= r.maxRequests {
			return false
		}
		if r.used.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release returns a reserved slot. A window reset in between may already
// have zeroed the count.
func (r *RateLimiter) release() {
	for {
		n := r.used.Load()
		if n <= 0 || r.used.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Used returns the number of requests made in the current window.
func (r *RateLimiter) Used() int64 {
	return r.used.Load()
}

// Remaining returns the number of requests left in the current window.
func (r *RateLimiter) Remaining() int64 {
	return max(r.maxRequests-r.used.Load(), 0)
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) checkReset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used.Store(0)
		r.resetAt = now.Add(r.window)
	}
}
