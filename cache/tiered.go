package cache

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZaguanLabs/lingo"
	"github.com/ZaguanLabs/lingo/metrics"
)

// Tiered composes the cache layers cheap-to-expensive: process memory,
// an optional Redis fast tier, and the durable Store. A hit at a slower
// tier is promoted into every faster tier so the next lookup stays fast.
//
// The memory and Redis tiers are optional conveniences: their failures
// are logged and treated as misses. The Store is the tier of record and
// its failures propagate.
type Tiered struct {
	memory *Memory
	fast   Layer
	store  *Store
	logger *logrus.Logger
	ttl    time.Duration
}

// TieredOption configures a Tiered cache.
type TieredOption func(*Tiered)

// WithTieredLogger sets the logger for optional-tier failures.
func WithTieredLogger(logger *logrus.Logger) TieredOption {
	return func(t *Tiered) {
		t.logger = logger
	}
}

// WithDefaultTTL sets the store entry lifetime used when a record
// carries no TTL of its own (default: 30 days).
func WithDefaultTTL(ttl time.Duration) TieredOption {
	return func(t *Tiered) {
		t.ttl = ttl
	}
}

// NewTiered creates a tiered cache. The fast tier may be nil; the
// memory tier and store may each be nil too, for setups that only want
// a subset of the layers.
func NewTiered(memory *Memory, fast Layer, store *Store, opts ...TieredOption) *Tiered {
	t := &Tiered{
		memory: memory,
		fast:   fast,
		store:  store,
		ttl:    time.Duration(lingo.DefaultCacheDurationDays) * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logrus.New()
		t.logger.SetLevel(logrus.ErrorLevel)
	}
	return t
}

// Get checks the layers cheapest first and promotes hits upward. The
// returned error is non-nil only for store I/O failures.
func (t *Tiered) Get(key string) (string, bool, error) {
	if t.memory != nil {
		if value, ok := t.memory.Get(key); ok {
			metrics.CacheHits.WithLabelValues("memory").Inc()
			return value, true, nil
		}
	}

	if t.fast != nil {
		if raw, ok := t.fast.Get(key); ok {
			value, err := decodeEnvelope(raw)
			if err != nil {
				// Corrupt fast-tier data is a miss, not a failure.
				t.logger.WithError(err).WithField("component", "tiered_cache").Warn("discarding undecodable fast-tier value")
			} else {
				metrics.CacheHits.WithLabelValues("redis").Inc()
				t.promote(key, value, false)
				return value, true, nil
			}
		}
	}

	if t.store != nil {
		entry, err := t.store.Get(key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				metrics.CacheMisses.Inc()
				return "", false, nil
			}
			return "", false, err
		}
		metrics.CacheHits.WithLabelValues("store").Inc()
		t.promote(key, entry.TranslatedContent, true)
		return entry.TranslatedContent, true, nil
	}

	metrics.CacheMisses.Inc()
	return "", false, nil
}

// Put writes the record through all configured layers. The memory tier
// is updated synchronously so a Get immediately following a Put in the
// same process sees the new value; optional-tier failures are logged
// and swallowed; store failures propagate.
func (t *Tiered) Put(key string, rec lingo.CacheRecord) error {
	if t.memory != nil {
		_ = t.memory.Set(key, rec.TranslatedContent)
	}

	if t.fast != nil {
		if err := t.fast.Set(key, encodeEnvelope(rec.TranslatedContent)); err != nil {
			t.logger.WithError(err).WithField("component", "tiered_cache").Warn("fast-tier write failed")
		}
	}

	if t.store != nil {
		ttl := rec.TTL
		if ttl <= 0 {
			ttl = t.ttl
		}
		now := time.Now()
		return t.store.Put(&Entry{
			Key:               key,
			OriginalContent:   rec.OriginalContent,
			TranslatedContent: rec.TranslatedContent,
			SourceLang:        rec.SourceLang,
			TargetLang:        rec.TargetLang,
			Provider:          rec.Provider,
			CreatedAt:         now,
			ExpiresAt:         now.Add(ttl),
		})
	}
	return nil
}

// Store exposes the durable tier for lifecycle operations (sweep, stats,
// export). Nil if the tiered cache was built without one.
func (t *Tiered) Store() *Store {
	return t.store
}

// promote writes a slow-tier hit into the faster tiers.
func (t *Tiered) promote(key, value string, intoFast bool) {
	if t.memory != nil {
		_ = t.memory.Set(key, value)
	}
	if intoFast && t.fast != nil {
		if err := t.fast.Set(key, encodeEnvelope(value)); err != nil {
			t.logger.WithError(err).WithField("component", "tiered_cache").Warn("fast-tier promotion failed")
		}
	}
}
