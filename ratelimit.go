package lingo

import (
	"sync"
	"time"
)

// RateLimiter enforces per-provider request ceilings over a fixed hourly
// window. Each provider gets an independent counter; when the window
// elapses the counter resets to zero and a fresh window begins. This is
// deliberately a fixed window, not a sliding log: a burst of up to the
// ceiling is possible immediately after a reset.
type RateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*rateWindow
	limits   map[string]int
	fallback int
	duration time.Duration
	now      func() time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	// MaxRequestsPerHour maps provider IDs to their ceilings. Providers
	// absent from the map use DefaultLimit.
	MaxRequestsPerHour map[string]int

	// DefaultLimit is the ceiling for providers without an explicit entry
	// (default: DefaultMaxRequestsPerHour).
	DefaultLimit int

	// WindowDuration is the counting window length (default: 1 hour).
	WindowDuration time.Duration
}

// NewRateLimiter creates a new fixed-window rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	fallback := cfg.DefaultLimit
	if fallback <= 0 {
		fallback = DefaultMaxRequestsPerHour
	}

	duration := cfg.WindowDuration
	if duration <= 0 {
		duration = time.Hour
	}

	return &RateLimiter{
		windows:  make(map[string]*rateWindow),
		limits:   cfg.MaxRequestsPerHour,
		fallback: fallback,
		duration: duration,
		now:      time.Now,
	}
}

// Allow reports whether a new request may be dispatched for the provider.
// An elapsed window is reset before the check. A provider that has never
// been seen starts with a zero count and a window beginning now.
func (r *RateLimiter) Allow(providerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.window(providerID)
	return w.count < r.limit(providerID)
}

// RecordUsage increments the provider's counter for the current window.
// Call it after Allow returned true and the request was actually
// attempted; the quota is consumed by the attempt whether or not the
// downstream call succeeds.
func (r *RateLimiter) RecordUsage(providerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.window(providerID).count++
}

// Window returns the provider's current count and window reset time.
func (r *RateLimiter) Window(providerID string) (count int, resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.window(providerID)
	return w.count, w.resetAt
}

// window returns the provider's window, resetting it if elapsed.
// Must be called with the lock held.
func (r *RateLimiter) window(providerID string) *rateWindow {
	now := r.now()

	w, ok := r.windows[providerID]
	if !ok {
		w = &rateWindow{resetAt: now.Add(r.duration)}
		r.windows[providerID] = w
		return w
	}

	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(r.duration)
	}
	return w
}

func (r *RateLimiter) limit(providerID string) int {
	if n, ok := r.limits[providerID]; ok && n > 0 {
		return n
	}
	return r.fallback
}
