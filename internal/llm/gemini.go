package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Steff96/sabi-tui/internal/core"
)

// GeminiProvider adapts the Google Gen AI Go SDK to the Provider interface.
// Non-streaming adaptation of haasonsaas-nexus/internal/agent/providers/google.go's
// GoogleProvider: the teacher streams via GenerateContentStream plus a Go
// 1.23 iterator and handles function-call/response parts and attachments; a
// single GenerateContent call replaces the stream, and function-call/
// attachment handling is dropped since tool calls are parsed from plain
// text (internal/core/parser.go) and there is no vision support in scope.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider constructs a Gemini provider. apiKey is required.
func NewGeminiProvider(apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Chat implements Provider.Chat with a single non-streaming request.
func (p *GeminiProvider) Chat(ctx context.Context, messages []core.Message) (string, error) {
	contents, system := convertToGeminiMessages(messages)

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}

	var text string
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil {
				text += part.Text
			}
		}
	}
	return text, nil
}

// ListModels returns a curated list of known Gemini models, grounded on
// haasonsaas-nexus/internal/agent/providers/google.go's Models().
func (p *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
		"gemini-1.5-flash-8b",
	}, nil
}

// SetModel implements Provider.SetModel.
func (p *GeminiProvider) SetModel(model string) { p.model = model }

// Model implements Provider.Model.
func (p *GeminiProvider) Model() string { return p.model }

// Ping implements Provider.Ping with a minimal generation request, since the
// SDK has no dedicated health endpoint.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.GenerateContent(ctx, p.model, []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: "ping"}}},
	}, nil)
	if err != nil {
		return fmt.Errorf("gemini ping: %w", err)
	}
	return nil
}

// convertToGeminiMessages maps the message log to Gemini contents, pulling
// system-role messages out into a single system instruction string since
// Gemini has no system-role content part.
func convertToGeminiMessages(messages []core.Message) ([]*genai.Content, string) {
	var system string
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		if m.Role == core.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}

		role := genai.RoleUser
		if m.Role == core.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents, system
}
