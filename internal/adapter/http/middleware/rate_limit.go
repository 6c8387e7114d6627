package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const sweepEvery = 1000

// RateLimiter allows each client IP at most limit requests per sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	calls  int
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) allow(ip string) bool {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls++
	if rl.calls%sweepEvery == 0 {
		rl.sweepLocked(now)
	}

	var kept []time.Time
	for _, t := range rl.hits[ip] {
		if now.Sub(t) < rl.window {
			kept = append(kept, t)
		}
	}
	if len(kept) >= rl.limit {
		rl.hits[ip] = kept
		return false
	}
	rl.hits[ip] = append(kept, now)
	return true
}

// sweepLocked drops clients with no hits inside the window. Caller holds mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	for ip, times := range rl.hits {
		if len(times) == 0 || now.Sub(times[len(times)-1]) >= rl.window {
			delete(rl.hits, ip)
		}
	}
}

// Middleware keys on RemoteAddr. That is the TCP peer unless the router
// runs chi's RealIP, which it only does behind a trusted proxy.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.limit <= 0 {
		return next
	}
	retryAfter := strconv.Itoa(int(rl.window.Seconds()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			w.Header().Set("Retry-After", retryAfter)
			writeMsg(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
