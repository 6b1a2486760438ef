package provider

import (
	"sync"
	"time"
)

// Usage tracks per-provider request statistics for observability. All
// recording is best-effort and never blocks the translation path.
type Usage struct {
	mu       sync.Mutex
	requests int64
	failures int64
	lastUsed time.Time
}

// UsageSnapshot is a point-in-time copy of the counters.
type UsageSnapshot struct {
	Requests int64     `json:"requests"`
	Failures int64     `json:"failures"`
	LastUsed time.Time `json:"last_used"`
}

// Record notes one request and whether it failed.
func (u *Usage) Record(failed bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requests++
	if failed {
		u.failures++
	}
	u.lastUsed = time.Now()
}

// Snapshot returns a copy of the current counters.
func (u *Usage) Snapshot() UsageSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return UsageSnapshot{
		Requests: u.requests,
		Failures: u.failures,
		LastUsed: u.lastUsed,
	}
}
