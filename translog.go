package lingo

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLogCapacity is the default ring buffer size for the translation log.
const DefaultLogCapacity = 1000

// LogEntry is an append-only record of a completed provider translation.
type LogEntry struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	Provider         string    `json:"provider"`
	SourceLang       string    `json:"source_lang"`
	TargetLang       string    `json:"target_lang"`
	OriginalLength   int       `json:"original_length"`
	TranslatedLength int       `json:"translated_length"`
	ActorID          string    `json:"actor_id,omitempty"`
	ClientIP         string    `json:"client_ip,omitempty"`
}

// TranslationLog is a capped ring buffer of the most recent translation
// records. The oldest entries are dropped on overflow. Safe for
// concurrent use.
type TranslationLog struct {
	mu      sync.Mutex
	entries []LogEntry
	start   int
	count   int
}

// NewTranslationLog creates a translation log holding at most capacity
// entries (DefaultLogCapacity if capacity <= 0).
func NewTranslationLog(capacity int) *TranslationLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &TranslationLog{
		entries: make([]LogEntry, capacity),
	}
}

// Append records an entry, assigning it an ID and timestamp if unset.
func (l *TranslationLog) Append(e LogEntry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := (l.start + l.count) % len(l.entries)
	l.entries[idx] = e
	if l.count < len(l.entries) {
		l.count++
	} else {
		// Buffer full: the slot we just wrote was the oldest entry.
		l.start = (l.start + 1) % len(l.entries)
	}
}

// Entries returns the logged entries, oldest first.
func (l *TranslationLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.entries[(l.start+i)%len(l.entries)]
	}
	return out
}

// Len returns the number of entries currently held.
func (l *TranslationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
