package lingo

import (
	"context"
	"errors"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns the default caller-level retry policy:
// at most 2 retries with a short backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		// Check context before each attempt
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// IsRetryable checks if an error is retryable. RateLimitError is never
// retryable here: the caller must wait for the window reset instead.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

// RetryProvider wraps a Provider with retry logic. The Dispatcher
// records one rate-limit slot per call it makes, so place this wrapper
// around the Dispatcher's call site rather than beneath it if every
// network attempt must consume quota.
type RetryProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryProvider creates a new provider with retry logic.
func NewRetryProvider(provider Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{
		provider: provider,
		config:   cfg,
	}
}

// Name implements Provider.
func (p *RetryProvider) Name() string {
	return p.provider.Name()
}

// Translate implements Provider with retry logic.
func (p *RetryProvider) Translate(ctx context.Context, content, sourceLang, targetLang string) (string, error) {
	return WithRetry(ctx, p.config, func() (string, error) {
		return p.provider.Translate(ctx, content, sourceLang, targetLang)
	})
}

// TestConnection implements Provider.
func (p *RetryProvider) TestConnection(ctx context.Context) error {
	return p.provider.TestConnection(ctx)
}
