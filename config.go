package lingo

import "time"

// Default configuration values.
const (
	DefaultCacheDurationDays  = 30
	DefaultMaxRequestsPerHour = 100
	DefaultProviderTimeout    = 30 * time.Second
)

// Config holds the runtime configuration the dispatcher reads. It is
// owned by the embedding application; the dispatcher never mutates it.
type Config struct {
	// CacheDurationDays controls how long cached translations stay valid.
	CacheDurationDays int

	// MaxRequestsPerHour maps a provider ID to its hourly request ceiling.
	// Providers absent from the map use DefaultMaxRequestsPerHour.
	MaxRequestsPerHour map[string]int

	// PreserveHTML enables markup-preserving translation for HTML content.
	PreserveHTML bool

	// EnabledLanguages lists the target languages translation is allowed
	// for. Empty means all languages are enabled.
	EnabledLanguages []string

	// DefaultLanguage is the site's source language and the fallback for
	// language detection.
	DefaultLanguage string

	// EnableLog enables the in-memory translation log ring buffer.
	EnableLog bool
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		CacheDurationDays: DefaultCacheDurationDays,
		PreserveHTML:      true,
		DefaultLanguage:   "en",
	}
}

// CacheTTL returns the configured cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	days := c.CacheDurationDays
	if days <= 0 {
		days = DefaultCacheDurationDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// LanguageEnabled reports whether translation into the given language is
// allowed by configuration.
func (c Config) LanguageEnabled(langCode string) bool {
	if len(c.EnabledLanguages) == 0 {
		return true
	}
	base := BaseLang(langCode)
	for _, l := range c.EnabledLanguages {
		if BaseLang(l) == base {
			return true
		}
	}
	return false
}

// MaxRequests returns the hourly ceiling for a provider.
func (c Config) MaxRequests(providerID string) int {
	if n, ok := c.MaxRequestsPerHour[providerID]; ok && n > 0 {
		return n
	}
	return DefaultMaxRequestsPerHour
}
