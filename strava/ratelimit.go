package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava enforces 100 requests per 15 minutes and 1000 per day. The limiter
// tracks both windows, corrects itself from response headers and spaces
// requests out with a minimum interval so that a full-club refresh does not
// burn the short window in one burst.
type RateLimiter struct {
	mu sync.Mutex

	shortLimit    int
	shortUsage    int
	shortResetsAt time.Time

	dailyLimit    int
	dailyUsage    int
	dailyResetsAt time.Time

	minInterval time.Duration
	lastRequest time.Time
}

func NewRateLimiter() *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		shortLimit:    100,
		shortResetsAt: now.Add(15 * time.Minute),
		dailyLimit:    1000,
		dailyResetsAt: now.Truncate(24 * time.Hour).Add(24 * time.Hour),
		minInterval:   150 * time.Millisecond,
	}
}

// Wait blocks until the next request fits within the limits, or the context
// is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.After(r.shortResetsAt) {
		r.shortUsage = 0
		r.shortResetsAt = now.Add(15 * time.Minute)
	}
	if now.After(r.dailyResetsAt) {
		r.dailyUsage = 0
		r.dailyResetsAt = now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	}

	if r.shortUsage >= r.shortLimit {
		if err := r.sleepLocked(ctx, time.Until(r.shortResetsAt)); err != nil {
			return err
		}
		r.shortUsage = 0
		r.shortResetsAt = time.Now().Add(15 * time.Minute)
	}
	if r.dailyUsage >= r.dailyLimit {
		if err := r.sleepLocked(ctx, time.Until(r.dailyResetsAt)); err != nil {
			return err
		}
		r.dailyUsage = 0
		r.dailyResetsAt = time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	}
	if elapsed := time.Since(r.lastRequest); elapsed < r.minInterval {
		if err := r.sleepLocked(ctx, r.minInterval-elapsed); err != nil {
			return err
		}
	}

	r.shortUsage++
	r.dailyUsage++
	r.lastRequest = time.Now()
	return nil
}

// sleepLocked releases the mutex for the duration of the sleep.
func (r *RateLimiter) sleepLocked(ctx context.Context, d time.Duration) error {
	r.mu.Unlock()
	defer r.mu.Lock()
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateFromHeaders syncs usage with Strava's X-RateLimit-Usage and
// X-RateLimit-Limit headers, each formatted "short,daily".
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if parts := strings.Split(h.Get("X-RateLimit-Usage"), ","); len(parts) >= 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			r.shortUsage = v
		}
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			r.dailyUsage = v
		}
	}
	if parts := strings.Split(h.Get("X-RateLimit-Limit"), ","); len(parts) >= 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			r.shortLimit = v
		}
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			r.dailyLimit = v
		}
	}
}

// Status returns the remaining budget in both windows.
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shortLimit - r.shortUsage, r.dailyLimit - r.dailyUsage
}
