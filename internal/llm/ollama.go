package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/Steff96/sabi-tui/internal/core"
)

// OllamaProvider adapts the official Ollama Go client to the Provider
// interface. Non-streaming adaptation of hkdb-otui/ollama/client.go's
// Client wrapper: the teacher always streams via a ChatResponse callback and
// tracks per-model tool-calling support (SupportsToolCalling); neither is
// needed here, since Chat returns a single accumulated string and tool
// calls are parsed from plain text (internal/core/parser.go).
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider constructs an Ollama provider pointed at baseURL.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url: %w", err)
	}

	client := api.NewClient(parsedURL, http.DefaultClient)
	return &OllamaProvider{client: client, model: model}, nil
}

// Chat implements Provider.Chat by accumulating the non-streamed response
// body, so only the final reply ever reaches the core.
func (p *OllamaProvider) Chat(ctx context.Context, messages []core.Message) (string, error) {
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: convertToOllamaMessages(messages),
		Stream:   boolPtr(false),
	}

	var reply string
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return reply, nil
}

// ListModels implements Provider.ListModels via the local model list.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ollama models: %w", err)
	}
	out := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		out = append(out, m.Name)
	}
	return out, nil
}

// SetModel implements Provider.SetModel.
func (p *OllamaProvider) SetModel(model string) { p.model = model }

// Model implements Provider.Model.
func (p *OllamaProvider) Model() string { return p.model }

// Ping implements Provider.Ping against the local server's model list.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.client.List(ctx); err != nil {
		return fmt.Errorf("ollama ping: %w", err)
	}
	return nil
}

func convertToOllamaMessages(messages []core.Message) []api.Message {
	out := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		role := "user"
		switch m.Role {
		case core.RoleSystem:
			role = "system"
		case core.RoleModel:
			role = "assistant"
		}
		out = append(out, api.Message{Role: role, Content: m.Content})
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
