package middleware

import (
	"log"
	"net/http"
	"net/netip"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a per-client token bucket refilled once a minute.
type RateLimiter struct {
	mu              sync.Mutex
	requestsPerMin  int
	clients         map[string]*clientBucket
	trusted         []netip.Prefix
	cleanupInterval time.Duration
	staleAfter      time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int
	// TrustedProxies lists peers whose forwarded headers identify the client.
	TrustedProxies  []netip.Prefix
	CleanupInterval time.Duration
}

// NewRateLimiter creates a limiter and starts its cleanup loop. Call Close
// to stop the loop.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		requestsPerMin:  config.RequestsPerMinute,
		clients:         make(map[string]*clientBucket),
		trusted:         config.TrustedProxies,
		cleanupInterval: config.CleanupInterval,
		staleAfter:      10 * time.Minute,
		stop:            make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Close stops the cleanup loop.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware rejects requests over the limit with 429 and sets
// X-RateLimit-* headers on every response.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, rl.trusted)
			allowed, remaining, reset := rl.Allow(ip)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMin))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				log.Printf("Rate limit exceeded for IP: %s on %s", ip, r.URL.Path)
				retry := max(1, int(time.Until(reset).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Allow takes a token for client and reports whether one was available,
// how many remain, and when the bucket is next full.
func (rl *RateLimiter) Allow(client string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()
	b, ok := rl.clients[client]
	if !ok {
		b = &clientBucket{tokens: rl.requestsPerMin, lastRefill: now}
		rl.clients[client] = b
	}
	b.lastSeen = now

	elapsed := now.Sub(b.lastRefill)
	if elapsed >= time.Minute {
		b.tokens = rl.requestsPerMin
		b.lastRefill = now
	} else if add := int(float64(rl.requestsPerMin) * elapsed.Seconds() / 60); add > 0 {
		b.tokens = min(rl.requestsPerMin, b.tokens+add)
		b.lastRefill = now
	}

	reset := b.lastRefill.Add(time.Minute)
	if b.tokens > 0 {
		b.tokens--
		return true, b.tokens, reset
	}
	return false, 0, reset
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than staleAfter.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()
	for ip, b := range rl.clients {
		if now.Sub(b.lastSeen) > rl.staleAfter {
			delete(rl.clients, ip)
		}
	}
}
