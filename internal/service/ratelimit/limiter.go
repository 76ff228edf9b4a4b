package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key. Every key starts with a full burst.
type Limiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*rate.Limiter
	now     func() time.Time
}

func New(burst int, perSec float64) *Limiter {
	return &Limiter{
		limit:   rate.Limit(perSec),
		burst:   burst,
		entries: make(map[string]*rate.Limiter),
		now:     time.Now,
	}
}

// Allow returns true if one event may happen now for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.entries[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.entries[key] = lim
	}
	return lim.AllowN(now, 1)
}

// Prune drops keys that have been idle long enough to refill completely.
// It returns the number of keys removed.
func (l *Limiter) Prune() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for k, lim := range l.entries {
		if lim.TokensAt(now) >= float64(l.burst) {
			delete(l.entries, k)
			n++
		}
	}
	return n
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
