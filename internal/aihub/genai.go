package aihub

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"solohub/internal/logging"
	"solohub/internal/types"
)

// GeminiProvider implements types.ModelProvider over the Gemini API. It is
// the one concrete provider shipped; anything else plugs in behind the same
// interface.
type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
}

// NewGeminiProvider builds a provider. defaultModel is used when neither the
// session nor the call specifies one.
func NewGeminiProvider(ctx context.Context, apiKey, defaultModel string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if defaultModel == "" {
		defaultModel = "gemini-2.0-flash"
	}
	return &GeminiProvider{client: client, defaultModel: defaultModel}, nil
}

// SendMessage runs one non-streaming completion.
func (p *GeminiProvider) SendMessage(ctx context.Context, messages []types.Message, cfg types.SessionConfig) (*types.ModelReply, error) {
	model, contents, genCfg := p.translate(messages, cfg)

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	reply := &types.ModelReply{Content: resp.Text(), Model: model}
	if resp.UsageMetadata != nil {
		reply.TokenCount = int(resp.UsageMetadata.TotalTokenCount)
	}
	return reply, nil
}

// StreamMessage runs a streaming completion, forwarding each text delta to
// onChunk before returning the assembled reply.
func (p *GeminiProvider) StreamMessage(ctx context.Context, messages []types.Message, cfg types.SessionConfig, onChunk func(string)) (*types.ModelReply, error) {
	model, contents, genCfg := p.translate(messages, cfg)

	var sb strings.Builder
	tokens := 0
	for resp, err := range p.client.Models.GenerateContentStream(ctx, model, contents, genCfg) {
		if err != nil {
			return nil, fmt.Errorf("gemini stream: %w", err)
		}
		chunk := resp.Text()
		if chunk != "" {
			sb.WriteString(chunk)
			onChunk(chunk)
		}
		if resp.UsageMetadata != nil {
			tokens = int(resp.UsageMetadata.TotalTokenCount)
		}
	}
	return &types.ModelReply{Content: sb.String(), TokenCount: tokens, Model: model}, nil
}

// translate maps the hub's message list and config onto the SDK's shapes:
// system messages become the system instruction, user/tool turns map to the
// "user" role, assistant turns to "model".
func (p *GeminiProvider) translate(messages []types.Message, cfg types.SessionConfig) (string, []*genai.Content, *genai.GenerateContentConfig) {
	model := cfg.Model
	if model == "" {
		model = p.defaultModel
	}

	genCfg := &genai.GenerateContentConfig{}
	if cfg.Temperature != nil {
		genCfg.Temperature = genai.Ptr(float32(*cfg.Temperature))
	}
	if cfg.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(cfg.MaxTokens)
	}

	var contents []*genai.Content
	for _, m := range messages {
		if m.Role == types.MessageRoleSystem {
			genCfg.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
			continue
		}
		role := genai.RoleUser
		if m.Role == types.MessageRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	logging.Get(logging.CategoryAIHub).Debugw("gemini request",
		"model", model, "turns", len(contents))
	return model, contents, genCfg
}
