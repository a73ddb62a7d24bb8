package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Steff96/sabi-tui/internal/core"
)

// AnthropicProvider adapts Anthropic's official Go SDK to the Provider
// interface. Non-streaming adaptation of hkdb-otui/provider/anthropic.go:
// the teacher accumulates a Messages.NewStreaming response and extracts
// tool-use blocks after the fact; since tool calls are parsed from plain
// text here (internal/core/parser.go), a single Messages.New call replaces
// the stream+accumulate dance.
type AnthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider constructs an Anthropic provider. apiKey is required.
func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{client: &client, model: anthropic.Model(model)}, nil
}

// Chat implements Provider.Chat with a single non-streaming request.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []core.Message) (string, error) {
	msgs, systemBlocks := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  msgs,
		MaxTokens: 4096,
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic chat: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += tb.Text
		}
	}
	return text, nil
}

// ListModels returns a curated list of known Claude models, since Anthropic
// has no models-list API (grounded on hkdb-otui/provider/anthropic.go).
func (p *AnthropicProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{
		"claude-3-5-sonnet-latest",
		"claude-3-5-haiku-latest",
		"claude-3-opus-20240229",
		"claude-3-haiku-20240307",
	}, nil
}

// SetModel implements Provider.SetModel.
func (p *AnthropicProvider) SetModel(model string) { p.model = anthropic.Model(model) }

// Model implements Provider.Model.
func (p *AnthropicProvider) Model() string { return string(p.model) }

// Ping implements Provider.Ping with a minimal 1-token request, since
// Anthropic has no dedicated health endpoint.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("anthropic ping: %w", err)
	}
	return nil
}

func convertToAnthropicMessages(messages []core.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var system []anthropic.TextBlockParam
	msgs := make([]anthropic.MessageParam, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case core.RoleModel:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return msgs, system
}
