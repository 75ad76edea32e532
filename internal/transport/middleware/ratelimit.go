package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket is kept.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter is a per-client token bucket limiter. Clients are keyed by
// remote IP without the port.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	last     time.Time
}

// NewRateLimiter creates a limiter that evicts idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.evictLoop(cleanupInterval)
	return rl
}

// Stop ends the eviction goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows maxPerMinute requests per client, with bursts up to the same
// number, and answers 429 with Retry-After beyond that.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	retryAfter := strconv.Itoa(60/max(maxPerMinute, 1) + 1)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientKey(r), maxPerMinute) {
				w.Header().Set("Retry-After", retryAfter)
				writeLimitError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string, maxPerMinute int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		capacity := float64(maxPerMinute)
		b = &bucket{tokens: capacity, capacity: capacity, perSec: capacity / 60, last: now}
		rl.buckets[key] = b
	}

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.perSec)
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.last) > bucketIdleTTL {
			delete(rl.buckets, key)
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
}
