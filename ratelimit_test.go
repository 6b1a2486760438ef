package lingo

import (
	"sync"
	"testing"
	"time"
)

func TestRateLimiter_Ceiling(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		MaxRequestsPerHour: map[string]int{"google": 2},
	})

	for i := 0; i < 2; i++ {
		if !limiter.Allow("google") {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		limiter.RecordUsage("google")
	}

	if limiter.Allow("google") {
		t.Error("Expected request past the ceiling to be refused")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(RateLimitConfig{
		MaxRequestsPerHour: map[string]int{"google": 1},
	})
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("google") {
		t.Fatal("Fresh window should allow")
	}
	limiter.RecordUsage("google")

	if limiter.Allow("google") {
		t.Fatal("Exhausted window should refuse")
	}

	// Advance past the window reset.
	now = now.Add(time.Hour + time.Second)

	if !limiter.Allow("google") {
		t.Error("Allow should succeed after the window reset")
	}
	count, _ := limiter.Window("google")
	if count != 0 {
		t.Errorf("Expected count reset to 0, got %d", count)
	}
}

func TestRateLimiter_UnknownProviderStartsFresh(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{DefaultLimit: 5})

	if !limiter.Allow("never-seen") {
		t.Error("A provider with no window should be treated as count=0")
	}

	count, resetAt := limiter.Window("never-seen")
	if count != 0 {
		t.Errorf("Expected count 0, got %d", count)
	}
	if !resetAt.After(time.Now()) {
		t.Error("Window reset should be in the future")
	}
}

func TestRateLimiter_ProvidersIndependent(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		MaxRequestsPerHour: map[string]int{"google": 1, "openrouter": 1},
	})

	limiter.RecordUsage("google")
	if limiter.Allow("google") {
		t.Error("google window should be exhausted")
	}
	if !limiter.Allow("openrouter") {
		t.Error("openrouter window should be untouched")
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{DefaultLimit: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				limiter.Allow("mock")
				limiter.RecordUsage("mock")
			}
		}()
	}
	wg.Wait()

	count, _ := limiter.Window("mock")
	if count != 500 {
		t.Errorf("Expected 500 recorded uses, got %d", count)
	}
}

func TestRateLimiter_CustomWindowDuration(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(RateLimitConfig{
		DefaultLimit:   1,
		WindowDuration: time.Minute,
	})
	limiter.now = func() time.Time { return now }

	limiter.RecordUsage("mock")
	if limiter.Allow("mock") {
		t.Fatal("Window should be exhausted")
	}

	now = now.Add(61 * time.Second)
	if !limiter.Allow("mock") {
		t.Error("One-minute window should have reset")
	}
}
