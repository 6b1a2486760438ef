package provider

import (
	"strings"
	"testing"
)

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	ids := IDs()

	want := map[string]bool{"google": false, "openrouter": false}
	for _, id := range ids {
		if _, ok := want[id]; ok {
			want[id] = true
		}
	}
	for id, found := range want {
		if !found {
			t.Errorf("Expected %q in registered IDs %v", id, ids)
		}
	}
}

func TestNew_UnknownID(t *testing.T) {
	_, err := New("nonexistent", Config{})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("Error should name the unknown ID: %v", err)
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	for _, id := range []string{"google", "openrouter"} {
		if _, err := New(id, Config{}); err == nil {
			t.Errorf("%s: expected error without API key", id)
		}
	}
}

func TestNew_BuildsProvider(t *testing.T) {
	p, err := New("google", Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Name() != "google" {
		t.Errorf("Expected name google, got %s", p.Name())
	}
}

func TestRegister_CustomFactory(t *testing.T) {
	Register("custom-test", func(cfg Config) (Provider, error) {
		return NewMock(), nil
	})

	p, err := New("custom-test", Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Name() != "mock" {
		t.Errorf("Expected mock, got %s", p.Name())
	}
}
