package lingo

import (
	"fmt"
	"time"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	// ErrAuth indicates invalid or missing credentials.
	ErrAuth ErrorKind = "auth"
	// ErrQuota indicates the provider rejected the request for quota reasons.
	ErrQuota ErrorKind = "quota"
	// ErrNetwork indicates a transport failure or timeout.
	ErrNetwork ErrorKind = "network"
	// ErrMalformedResponse indicates the provider returned an unparseable body.
	ErrMalformedResponse ErrorKind = "malformed_response"
	// ErrUnsupportedLanguage indicates the provider cannot handle the language pair.
	ErrUnsupportedLanguage ErrorKind = "unsupported_language"
)

// ProviderError indicates a remote translation backend failure.
type ProviderError struct {
	Kind      ErrorKind
	Provider  string
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// RateLimitError indicates the per-provider request ceiling for the current
// window has been reached. The caller may retry after ResetAt.
type RateLimitError struct {
	Provider string
	ResetAt  time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit reached for provider %s, window resets at %s",
		e.Provider, e.ResetAt.Format(time.RFC3339))
}

// StoreError indicates a durable cache store I/O failure.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache store %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("cache store %s failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
