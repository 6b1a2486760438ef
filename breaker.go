package lingo

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider wraps a Provider with a circuit breaker so that a
// failing backend stops being hammered while it is down. While the
// breaker is open, calls fail fast with a retryable network-kind error.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that trips the
	// breaker (default: 5).
	MaxFailures uint32

	// OpenTimeout is how long the breaker stays open before allowing a
	// probe request (default: 60s).
	OpenTimeout time.Duration
}

// NewBreakerProvider creates a circuit-breaking provider wrapper.
func NewBreakerProvider(provider Provider, cfg BreakerConfig) *BreakerProvider {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    provider.Name(),
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})

	return &BreakerProvider{provider: provider, cb: cb}
}

// Name implements Provider.
func (p *BreakerProvider) Name() string {
	return p.provider.Name()
}

// Translate implements Provider, failing fast while the breaker is open.
func (p *BreakerProvider) Translate(ctx context.Context, content, sourceLang, targetLang string) (string, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.provider.Translate(ctx, content, sourceLang, targetLang)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", &ProviderError{
				Kind:      ErrNetwork,
				Provider:  p.provider.Name(),
				Message:   "circuit breaker open",
				Cause:     err,
				Retryable: true,
			}
		}
		return "", err
	}
	return result.(string), nil
}

// TestConnection implements Provider. Connectivity checks bypass the
// breaker so diagnostics can observe the real backend state.
func (p *BreakerProvider) TestConnection(ctx context.Context) error {
	return p.provider.TestConnection(ctx)
}
