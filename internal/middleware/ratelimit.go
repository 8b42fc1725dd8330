package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/shopworks/storefront/internal/model"
)

// WindowStore counts requests per key inside a fixed window. Hit increments
// the counter for the window the key currently occupies and reports the new
// count plus the time remaining until that window expires.
type WindowStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RateLimiter applies fixed-window rate limiting: within each window exactly
// Max requests per key pass, and the Max+1th is rejected until the window
// rolls over.
type RateLimiter struct {
	store  WindowStore
	window time.Duration
	max    int64
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Store  WindowStore
	Window time.Duration // Time window (default 1 minute)
	Max    int64         // Requests per window (default 100)
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Max == 0 {
		cfg.Max = 100
	}
	return &RateLimiter{
		store:  cfg.Store,
		window: cfg.Window,
		max:    cfg.Max,
	}
}

// Allow records a hit for key and reports whether the request may proceed.
// remaining is the number of further requests the key has in this window;
// retryAfter is how long a rejected caller must wait.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int64, retryAfter time.Duration, err error) {
	count, ttl, err := rl.store.Hit(ctx, key, rl.window)
	if err != nil {
		return false, 0, 0, err
	}

	remaining = rl.max - count
	if remaining < 0 {
		remaining = 0
	}
	if count > rl.max {
		return false, 0, ttl, nil
	}
	return true, remaining, 0, nil
}

// Max returns the per-window request budget.
func (rl *RateLimiter) Max() int64 {
	return rl.max
}

// RateLimit returns a middleware that applies rate limiting. Authenticated
// requests are keyed by user ID, anonymous ones by client IP. When the
// window store itself fails the request is let through; dropping traffic
// because the counter backend is down would turn a cache outage into an
// API outage.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limitKey(r)

			allowed, remaining, retryAfter, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.Warn("rate limit store unavailable, allowing request",
					slog.String("key", key),
					slog.Any("error", err),
				)
				next.ServeHTTP(w, r)
				return
			}

			// Set rate limit headers
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limiter.max, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(retryAfter).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))

				model.NewRateLimitError(seconds).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limitKey picks the rate limit key: user ID if authenticated, otherwise
// the client IP without the port.
func limitKey(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != 0 {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// MemoryWindowStore is an in-process WindowStore. Suitable for a single
// instance; use the Redis store when running more than one.
type MemoryWindowStore struct {
	mu       sync.Mutex
	windows  map[string]*windowEntry
	clock    clock.Clock
	stopChan chan struct{}
	stopOnce sync.Once
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryWindowStore creates an in-memory window store. A nil clk uses
// the wall clock.
func NewMemoryWindowStore(clk clock.Clock) *MemoryWindowStore {
	if clk == nil {
		clk = clock.New()
	}
	s := &MemoryWindowStore{
		windows:  make(map[string]*windowEntry),
		clock:    clk,
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	go s.cleanupLoop()

	return s
}

// Stop stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryWindowStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Hit implements WindowStore.
func (s *MemoryWindowStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e, exists := s.windows[key]
	if !exists || !now.Before(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		s.windows[key] = e
	}
	e.count++
	return e.count, e.resetAt.Sub(now), nil
}

func (s *MemoryWindowStore) cleanupLoop() {
	ticker := s.clock.Ticker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *MemoryWindowStore) cleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for key, e := range s.windows {
		if !now.Before(e.resetAt) {
			delete(s.windows, key)
		}
	}
}
