package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type windowEntry struct {
	requests []time.Time
	evicted  bool
	mu       sync.Mutex
}

// RateLimiter allows at most max requests per client within a sliding window.
type RateLimiter struct {
	max        int
	window     time.Duration
	trustProxy bool
	store      sync.Map
	now        func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewRateLimiter keys clients by peer address. With trustProxy set the
// server is assumed to sit behind one reverse proxy and the address that
// proxy appended to X-Forwarded-For is used instead.
func NewRateLimiter(max int, window time.Duration, trustProxy bool) *RateLimiter {
	return &RateLimiter{max: max, window: window, trustProxy: trustProxy, now: time.Now}
}

func (rl *RateLimiter) allow(client string) bool {
	now := rl.now()
	rl.sweep(now)
	cutoff := now.Add(-rl.window)

	for {
		v, _ := rl.store.LoadOrStore(client, &windowEntry{})
		entry := v.(*windowEntry)

		entry.mu.Lock()
		if entry.evicted {
			entry.mu.Unlock()
			continue
		}

		filtered := entry.requests[:0]
		for _, t := range entry.requests {
			if t.After(cutoff) {
				filtered = append(filtered, t)
			}
		}
		entry.requests = filtered

		allowed := len(entry.requests) < rl.max
		if allowed {
			entry.requests = append(entry.requests, now)
		}
		entry.mu.Unlock()
		return allowed
	}
}

// sweep drops clients without a request inside the window. It runs at most
// once per window.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.sweepMu.Lock()
	if now.Sub(rl.lastSweep) < rl.window {
		rl.sweepMu.Unlock()
		return
	}
	rl.lastSweep = now
	rl.sweepMu.Unlock()

	cutoff := now.Add(-rl.window)
	rl.store.Range(func(key, v any) bool {
		entry := v.(*windowEntry)
		entry.mu.Lock()
		if n := len(entry.requests); n == 0 || !entry.requests[n-1].After(cutoff) {
			entry.evicted = true
			rl.store.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

func (rl *RateLimiter) clients() int {
	n := 0
	rl.store.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r, rl.trustProxy)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the peer address, or the last X-Forwarded-For hop when
// the peer is a trusted proxy. Earlier hops are client supplied.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
