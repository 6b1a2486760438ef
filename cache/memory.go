package cache

import (
	"sync"
	"time"
)

// memoryEntry holds a cached value with its timestamps.
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is a thread-safe in-process cache with TTL support and a byte
// ceiling. When the approximate footprint exceeds the ceiling, the
// oldest ~20% of entries (by insertion order) are evicted until usage is
// back under the ceiling. Insertion-order truncation, not strict LRU.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	order    []string // insertion order; may contain stale keys
	size     int64
	maxBytes int64
	ttl      time.Duration
	now      func() time.Time
}

// NewMemory creates a memory cache bounded to roughly maxBytes of cached
// content. If maxBytes <= 0 the cache is unbounded.
func NewMemory(maxBytes int64) *Memory {
	return &Memory{
		entries:  make(map[string]memoryEntry),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// NewMemoryWithTTL creates a bounded memory cache whose entries also
// expire after ttl. A zero or negative ttl disables expiry.
func NewMemoryWithTTL(maxBytes int64, ttl time.Duration) *Memory {
	m := NewMemory(maxBytes)
	m.ttl = ttl
	return m
}

// Get retrieves a value from the cache.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.removeLocked(key)
		return "", false
	}
	return entry.value, true
}

// Set stores a value in the cache, evicting old entries if the byte
// ceiling is exceeded.
func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	if old, ok := m.entries[key]; ok {
		m.size -= entrySize(key, old.value)
	} else {
		m.order = append(m.order, key)
	}

	m.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	m.size += entrySize(key, value)

	if m.maxBytes > 0 && m.size > m.maxBytes {
		m.evictLocked()
	}
	return nil
}

// Len returns the number of entries in the cache.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Size returns the approximate byte footprint of the cached content.
func (m *Memory) Size() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Clear removes all entries from the cache.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
	m.order = nil
	m.size = 0
}

// evictLocked drops the oldest ~20% of live entries, repeating until the
// footprint is under the ceiling. Must be called with the lock held.
func (m *Memory) evictLocked() {
	for m.size > m.maxBytes && len(m.entries) > 0 {
		n := len(m.entries) / 5
		if n < 1 {
			n = 1
		}
		dropped := 0
		for dropped < n && len(m.order) > 0 {
			key := m.order[0]
			m.order = m.order[1:]
			if _, ok := m.entries[key]; !ok {
				continue // stale order slot from a prior removal
			}
			m.removeFromMapLocked(key)
			dropped++
		}
		if dropped == 0 {
			return
		}
	}
}

// removeLocked deletes an entry and compacts its order slot lazily.
func (m *Memory) removeLocked(key string) {
	if _, ok := m.entries[key]; !ok {
		return
	}
	m.removeFromMapLocked(key)
}

func (m *Memory) removeFromMapLocked(key string) {
	entry := m.entries[key]
	m.size -= entrySize(key, entry.value)
	delete(m.entries, key)
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

// Verify Memory implements Layer
var _ Layer = (*Memory)(nil)
