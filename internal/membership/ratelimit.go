package membership

import (
	"sync"
	"time"
)

// rateLimiter caps membership checks per user over a sliding window.
type rateLimiter struct {
	mu     sync.Mutex
	hits   map[int64][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		hits:   make(map[int64][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// allow records an attempt and reports whether it is within the limit.
// Denied attempts are not recorded, so a user who waits out the window
// regains the full allowance.
func (r *rateLimiter) allow(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)
	kept := r.hits[userID][:0]
	for _, t := range r.hits[userID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= r.max {
		r.hits[userID] = kept
		return false
	}
	r.hits[userID] = append(kept, now)
	return true
}

// sweep drops users whose attempts have all aged out.
func (r *rateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.window)
	for id, hits := range r.hits {
		live := false
		for _, t := range hits {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(r.hits, id)
		}
	}
}
