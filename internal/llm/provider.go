// Package llm is the LLM client abstraction: a uniform chat/list_models
// interface over provider variants (spec.md §4.6). Concrete wire formats
// are out of scope (spec.md §1); the core only ever sees this interface.
package llm

import (
	"context"
	"fmt"

	"github.com/Steff96/sabi-tui/internal/config"
	"github.com/Steff96/sabi-tui/internal/core"
)

// Provider is the uniform capability surface over every backend. Grounded
// on hkdb-otui/model/provider.go's interface shape, but narrowed from the
// teacher's streaming+native-tool-calling Chat/ChatWithTools(ctx, messages,
// tools, callback) down to spec.md §4.6's plain chat(messages) -> text; the
// narrowing itself is grounded on original_source/src/ai_client.rs's
// AIClient (chat, set_model, model, list_models), which is the actual
// pre-distillation interface.
type Provider interface {
	// Chat sends the full message history and returns the model's raw
	// reply. Errors are opaque to the core: a failure surfaces to the
	// state machine as an ApiError event carrying a display string.
	Chat(ctx context.Context, messages []core.Message) (string, error)

	// ListModels returns the provider's available models, or an empty
	// slice for providers without a listing API.
	ListModels(ctx context.Context) ([]string, error)

	// SetModel changes the active model.
	SetModel(model string)

	// Model returns the currently selected model name.
	Model() string

	// Ping checks whether the provider is reachable.
	Ping(ctx context.Context) error
}

// New builds a Provider for the named backend using its configured
// settings. Grounded on hkdb-otui/provider/factory.go's NewProvider switch.
func New(providerID string, cfg *config.Config) (Provider, error) {
	pc := cfg.ProviderConfigFor(providerID)

	switch providerID {
	case "anthropic":
		return NewAnthropicProvider(pc.APIKey, pc.Model)
	case "openai":
		return NewOpenAIProvider(pc.BaseURL, pc.APIKey, pc.Model)
	case "ollama":
		return NewOllamaProvider(pc.BaseURL, pc.Model)
	case "gemini":
		return NewGeminiProvider(pc.APIKey, pc.Model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", providerID)
	}
}
