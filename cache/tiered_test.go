package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/ZaguanLabs/lingo"
)

// flakyLayer is a Layer whose operations can be forced to fail.
type flakyLayer struct {
	entries map[string]string
	fail    bool
	sets    int
}

func newFlakyLayer() *flakyLayer {
	return &flakyLayer{entries: make(map[string]string)}
}

func (l *flakyLayer) Get(key string) (string, bool) {
	if l.fail {
		return "", false
	}
	v, ok := l.entries[key]
	return v, ok
}

func (l *flakyLayer) Set(key, value string) error {
	l.sets++
	if l.fail {
		return errors.New("tier unavailable")
	}
	l.entries[key] = value
	return nil
}

func testRecord(translated string) lingo.CacheRecord {
	return lingo.CacheRecord{
		OriginalContent:   "Hello",
		TranslatedContent: translated,
		SourceLang:        "en",
		TargetLang:        "it",
		Provider:          "mock",
	}
}

func TestTiered_PutThenGet(t *testing.T) {
	tc := NewTiered(NewMemory(0), newFlakyLayer(), newTestStore(t))

	if err := tc.Put("key1", testRecord("Ciao")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	val, ok, err := tc.Get("key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || val != "Ciao" {
		t.Errorf("Expected hit 'Ciao', got %q (ok=%v)", val, ok)
	}
}

func TestTiered_Miss(t *testing.T) {
	tc := NewTiered(NewMemory(0), nil, newTestStore(t))

	val, ok, err := tc.Get("absent")
	if err != nil {
		t.Fatalf("Miss should not be an error: %v", err)
	}
	if ok || val != "" {
		t.Errorf("Expected miss, got %q (ok=%v)", val, ok)
	}
}

func TestTiered_StoreHitPromotesToMemory(t *testing.T) {
	store := newTestStore(t)
	tc := NewTiered(NewMemory(0), nil, store)

	// Seed the durable tier only.
	now := time.Now()
	if err := store.Put(&Entry{
		Key:               "key1",
		TranslatedContent: "Ciao",
		SourceLang:        "en",
		TargetLang:        "it",
		CreatedAt:         now,
		ExpiresAt:         now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("seeding store failed: %v", err)
	}

	if _, ok, _ := tc.Get("key1"); !ok {
		t.Fatal("Expected store hit")
	}

	// With the store wiped, the promoted copy must answer from memory.
	if _, err := store.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	val, ok, err := tc.Get("key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || val != "Ciao" {
		t.Error("Store hit should have been promoted into the memory tier")
	}
}

func TestTiered_FastTierHitPromotesToMemory(t *testing.T) {
	fast := newFlakyLayer()
	fast.entries["key1"] = encodeEnvelope("Ciao")
	tc := NewTiered(NewMemory(0), fast, nil)

	val, ok, err := tc.Get("key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || val != "Ciao" {
		t.Fatalf("Expected fast-tier hit, got %q (ok=%v)", val, ok)
	}

	// The hit must now be served without touching the fast tier.
	fast.fail = true
	if val, ok, _ := tc.Get("key1"); !ok || val != "Ciao" {
		t.Error("Fast-tier hit should have been promoted into memory")
	}
}

func TestTiered_CorruptFastTierValueIsMiss(t *testing.T) {
	fast := newFlakyLayer()
	fast.entries["key1"] = "definitely not an envelope"
	tc := NewTiered(nil, fast, nil)

	_, ok, err := tc.Get("key1")
	if err != nil {
		t.Fatalf("Corrupt fast-tier data should not be an error: %v", err)
	}
	if ok {
		t.Error("Corrupt fast-tier data should be a miss")
	}
}

func TestTiered_FastTierWriteFailureTolerated(t *testing.T) {
	fast := newFlakyLayer()
	fast.fail = true
	tc := NewTiered(NewMemory(0), fast, newTestStore(t))

	if err := tc.Put("key1", testRecord("Ciao")); err != nil {
		t.Fatalf("Optional-tier failure must not fail the Put: %v", err)
	}

	if val, ok, _ := tc.Get("key1"); !ok || val != "Ciao" {
		t.Error("Value should still be readable from the surviving tiers")
	}
}

func TestTiered_PutVisibleImmediately(t *testing.T) {
	// No store at all: the memory tier alone must serve the read.
	tc := NewTiered(NewMemory(0), nil, nil)

	if err := tc.Put("key1", testRecord("Ciao")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if val, ok, _ := tc.Get("key1"); !ok || val != "Ciao" {
		t.Error("Put should be visible to an immediate Get")
	}
}

func TestTiered_TTLOverride(t *testing.T) {
	store := newTestStore(t)
	tc := NewTiered(nil, nil, store, WithDefaultTTL(time.Hour))

	rec := testRecord("Ciao")
	rec.TTL = 10 * time.Minute
	if err := tc.Put("key1", rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, err := store.Get("key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	ttl := entry.ExpiresAt.Sub(entry.CreatedAt)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("Record TTL should override the default, got %v", ttl)
	}
}

func TestTiered_StoreAccessor(t *testing.T) {
	store := newTestStore(t)
	if got := NewTiered(nil, nil, store).Store(); got != store {
		t.Error("Store accessor should return the configured store")
	}
	if got := NewTiered(NewMemory(0), nil, nil).Store(); got != nil {
		t.Error("Store accessor should be nil without a durable tier")
	}
}
