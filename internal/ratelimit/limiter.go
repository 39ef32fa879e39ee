// Package ratelimit provides per-key token bucket limiters.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

// Keyed holds one token bucket per key, e.g. per inviter or per user.
type Keyed struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
	cleanup     time.Duration
	now         func() time.Time
}

func NewKeyed(limit rate.Limit, burst int) *Keyed {
	return &Keyed{
		limiters:    make(map[string]*rate.Limiter),
		limit:       limit,
		burst:       burst,
		lastCleanup: time.Now(),
		cleanup:     time.Hour,
		now:         time.Now,
	}
}

// PerHour converts a count per hour into a rate.
func PerHour(n int) rate.Limit {
	return rate.Every(time.Hour / time.Duration(max(n, 1)))
}

// PerMinute converts a count per minute into a rate.
func PerMinute(n int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(max(n, 1)))
}

// Allow takes one token for key. When the bucket is empty it returns a
// RateLimitError carrying the wait until the next token.
func (k *Keyed) Allow(key string) error {
	now := k.now()
	r := k.get(key, now).ReserveN(now, 1)
	if !r.OK() {
		return &domain.RateLimitError{RetryAfter: time.Minute}
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return &domain.RateLimitError{RetryAfter: delay.Round(time.Second) + time.Second}
	}
	return nil
}

func (k *Keyed) get(key string, now time.Time) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Reset all buckets periodically to bound memory.
	if now.Sub(k.lastCleanup) > k.cleanup {
		k.limiters = make(map[string]*rate.Limiter)
		k.lastCleanup = now
	}

	limiter, exists := k.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = limiter
	}
	return limiter
}
