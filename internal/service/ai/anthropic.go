package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/zhouzirui/treat-or-hell/backend/internal/config"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
)

// AnthropicGateway calls the Anthropic Messages API. System entries are sent
// through the dedicated system field; the rest keep their order.
type AnthropicGateway struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicGateway creates a client. Extra request options (base URL,
// HTTP client) are mainly for tests.
func NewAnthropicGateway(cfg config.AnthropicConfig, opts ...option.RequestOption) *AnthropicGateway {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &AnthropicGateway{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (g *AnthropicGateway) Name() string {
	return config.ProviderAnthropic
}

func (g *AnthropicGateway) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	var system []anthropic.TextBlockParam
	conversation := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case chat.RoleAssistant:
			conversation = append(conversation, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	response, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		System:    system,
		Messages:  conversation,
	})
	if err != nil {
		return "", err
	}

	var reply strings.Builder
	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			reply.WriteString(block.Text)
		}
	}
	if reply.Len() == 0 {
		return "", errors.New("empty response")
	}
	return reply.String(), nil
}
