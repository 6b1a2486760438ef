// Package provider implements the remote translation backends and the
// registry that resolves a provider ID to an implementation at startup.
package provider

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/ZaguanLabs/lingo"
)

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = lingo.Provider

// LanguageDetector is an alias to the main package capability interface.
type LanguageDetector = lingo.LanguageDetector

// Config holds common provider construction parameters.
type Config struct {
	APIKey     string        // Backend credential
	Model      string        // Model identifier, for LLM-backed providers
	BaseURL    string        // Custom endpoint (optional)
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Custom HTTP client (optional)
}

// Factory constructs a provider from a Config.
type Factory func(cfg Config) (Provider, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a provider constructor available under an ID. Concrete
// providers register themselves at init time, like database drivers.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = factory
}

// New resolves a provider ID to an instance.
func New(id string, cfg Config) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider: unknown provider %q (registered: %v)", id, IDs())
	}
	return factory(cfg)
}

// IDs returns the registered provider IDs, sorted.
func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func httpClient(cfg Config) *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
