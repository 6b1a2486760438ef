package provider

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a mock provider for testing.
type Mock struct {
	mu           sync.Mutex
	Translations map[string]string // Map of source text to translation
	Err          error             // If set, Translate fails with this error
	CallCount    int               // Number of times Translate was called
	LastContent  string            // Last content received
}

// NewMock creates a new mock provider with default translations.
func NewMock() *Mock {
	return &Mock{
		Translations: map[string]string{
			"Hello":       "Ciao",
			"World":       "Mondo",
			"Hello World": "Ciao Mondo",
			"Welcome":     "Benvenuto",
		},
	}
}

// Name implements Provider.
func (m *Mock) Name() string {
	return "mock"
}

// Translate returns mock translations.
func (m *Mock) Translate(ctx context.Context, content, sourceLang, targetLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastContent = content

	if m.Err != nil {
		return "", m.Err
	}
	if translation, ok := m.Translations[content]; ok {
		return translation, nil
	}
	// Bracketed text for unknown translations
	return fmt.Sprintf("[%s->%s] %s", sourceLang, targetLang, content), nil
}

// TestConnection implements Provider.
func (m *Mock) TestConnection(ctx context.Context) error {
	return m.Err
}

// Calls returns the number of Translate calls made.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Reset resets the call count and last content.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastContent = ""
}

// Verify Mock implements Provider
var _ Provider = (*Mock)(nil)
