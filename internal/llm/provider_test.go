package llm

import (
	"testing"

	"github.com/Steff96/sabi-tui/internal/config"
)

func TestNewUnknownProvider(t *testing.T) {
	cfg := &config.Config{Providers: map[string]config.ProviderConfig{}}
	if _, err := New("not-a-real-provider", cfg); err == nil {
		t.Fatalf("expected an error for an unknown provider id")
	}
}

func TestNewDispatchesPerProvider(t *testing.T) {
	cfg := &config.Config{
		Providers: map[string]config.ProviderConfig{
			"anthropic": {APIKey: "test-key"},
			"openai":    {APIKey: "test-key"},
			"gemini":    {APIKey: "test-key"},
			"ollama":    {},
		},
	}

	for _, id := range []string{"anthropic", "openai", "gemini", "ollama"} {
		t.Run(id, func(t *testing.T) {
			p, err := New(id, cfg)
			if err != nil {
				t.Fatalf("New(%q): %v", id, err)
			}
			if p == nil {
				t.Fatalf("New(%q) returned a nil provider with no error", id)
			}
		})
	}
}

func TestNewRequiresAPIKeyWhereApplicable(t *testing.T) {
	cfg := &config.Config{Providers: map[string]config.ProviderConfig{
		"anthropic": {},
		"openai":    {},
		"gemini":    {},
	}}

	for _, id := range []string{"anthropic", "openai", "gemini"} {
		t.Run(id, func(t *testing.T) {
			if _, err := New(id, cfg); err == nil {
				t.Fatalf("New(%q) with no API key should fail", id)
			}
		})
	}
}

func TestOllamaProviderDefaults(t *testing.T) {
	p, err := NewOllamaProvider("", "")
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	if p.Model() == "" {
		t.Fatalf("expected a default model to be set")
	}
}

func TestSetModel(t *testing.T) {
	p, err := NewOllamaProvider("", "llama3.1:latest")
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	p.SetModel("mistral:latest")
	if p.Model() != "mistral:latest" {
		t.Fatalf("Model() = %q, want %q", p.Model(), "mistral:latest")
	}
}
