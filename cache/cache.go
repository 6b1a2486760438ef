// Package cache provides the translation cache tiers: an in-process
// memory cache, an optional Redis fast cache, and a GORM-backed durable
// store, composed by Tiered with hit promotion and compression.
package cache

import "errors"

// ErrNotFound is returned by the durable store when no live entry exists
// for a key. Expired entries are logically absent and report ErrNotFound
// even while physically present.
var ErrNotFound = errors.New("cache: entry not found")

// Layer is a single cache tier.
type Layer interface {
	// Get retrieves a cached value. Returns empty string and false if not
	// found or expired.
	Get(key string) (string, bool)

	// Set stores a value in the tier.
	Set(key string, value string) error
}
