// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepInterval is how often idle counters are dropped.
const sweepInterval = 5 * time.Minute

// counter is one key's fixed window.
type counter struct {
	start time.Time
	count int
}

// RateLimiter caps state-changing requests per client in fixed windows.
// Requests are keyed by client id when LoadClient resolved an existing
// cookie, and by IP when there is no client or its id was just issued, so
// dropping the cookie does not reset the count.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	counters map[string]*counter

	stopCh chan struct{}
	once   sync.Once
}

// NewRateLimiter allows limit writes per window for each key. A background
// goroutine drops idle counters until Stop is called.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*counter),
		stopCh:   make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// take counts one request for key. It reports whether the request fits,
// how many remain in the window and when the window resets.
func (rl *RateLimiter) take(key string) (ok bool, remaining int, reset time.Time) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, exists := rl.counters[key]
	if !exists || !now.Before(c.start.Add(rl.window)) {
		c = &counter{start: now}
		rl.counters[key] = c
	}
	reset = c.start.Add(rl.window)
	if c.count >= rl.limit {
		return false, 0, reset
	}
	c.count++
	return true, rl.limit - c.count, reset
}

// sweep drops counters whose window has closed.
func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, c := range rl.counters {
		if !now.Before(c.start.Add(rl.window)) {
			delete(rl.counters, key)
		}
	}
}

// Middleware rate-limits state-changing requests. Reads pass through
// uncounted.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		key := limitKey(r)

		ok, remaining, reset := rl.take(key)
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			wait := math.Ceil(reset.Sub(rl.now()).Seconds())
			h.Set("Retry-After", strconv.Itoa(max(1, int(wait))))
			writeJSONError(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitKey picks the counter for r.
func limitKey(r *http.Request) string {
	ctx := r.Context()
	if id := ClientFromCtx(ctx); id != "" && !IsNewClient(ctx) {
		return "client:" + id
	}
	return "ip:" + clientIP(r)
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

// clientIP returns the originating address of r, preferring the proxy
// headers X-Forwarded-For (leftmost entry) and X-Real-IP.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
