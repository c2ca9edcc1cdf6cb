package service

import (
	"sync"
	"time"
)

// RateLimiter is a per-key rolling-window counter. Keys are client IPs; a
// key is refused once its recorded hits within the window reach the limit.
//
// The single-admin deployment never sees enough distinct clients for the
// in-memory map to matter, and expired entries are pruned on access.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	hits   map[string][]time.Time

	now func() time.Time
}

// NewRateLimiter builds a limiter allowing limit hits per key per window.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	return &RateLimiter{
		window: window,
		limit:  limit,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether key is still under the limit. It does not record a
// hit; callers decide what counts (a failed login, a submitted form).
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.prune(key)) < l.limit
}

// Record adds one hit for key at the current time.
func (l *RateLimiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hits[key] = append(l.prune(key), l.now())
}

// prune drops hits older than the window. Caller must hold mu.
func (l *RateLimiter) prune(key string) []time.Time {
	cutoff := l.now().Add(-l.window)

	fresh := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) == 0 {
		delete(l.hits, key)
		return nil
	}

	l.hits[key] = fresh
	return fresh
}
