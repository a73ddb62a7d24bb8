package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Steff96/sabi-tui/internal/core"
)

// OpenAIProvider adapts the official OpenAI Go SDK to the Provider
// interface. Non-streaming adaptation of hkdb-otui/provider/openai.go: the
// teacher accumulates Chat.Completions.NewStreaming chunks via a
// ChatCompletionAccumulator; a single Chat.Completions.New call replaces
// that, since there is no streaming callback in the narrowed interface.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider constructs an OpenAI provider. apiKey is required.
func NewOpenAIProvider(baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: client, model: model}, nil
}

// Chat implements Provider.Chat with a single non-streaming request.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []core.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: convertToOpenAIMessages(messages),
		Model:    openai.ChatModel(p.model),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels implements Provider.ListModels via Models.List.
func (p *OpenAIProvider) ListModels(ctx context.Context) ([]string, error) {
	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}
	out := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		out = append(out, m.ID)
	}
	return out, nil
}

// SetModel implements Provider.SetModel.
func (p *OpenAIProvider) SetModel(model string) { p.model = model }

// Model implements Provider.Model.
func (p *OpenAIProvider) Model() string { return p.model }

// Ping implements Provider.Ping by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("openai ping: %w", err)
	}
	return nil
}

func convertToOpenAIMessages(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case core.RoleModel:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
