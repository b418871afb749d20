package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/zhouzirui/treat-or-hell/backend/internal/config"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// OpenAIGateway calls the OpenAI chat completion API through langchaingo.
type OpenAIGateway struct {
	llm contentGenerator
}

// NewOpenAIGateway creates a client for cfg.Model.
func NewOpenAIGateway(cfg config.OpenAIConfig) (*OpenAIGateway, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &OpenAIGateway{llm: llm}, nil
}

func (g *OpenAIGateway) Name() string {
	return config.ProviderOpenAI
}

func (g *OpenAIGateway) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	resp, err := g.llm.GenerateContent(ctx, toMessageContent(messages))
	if err != nil {
		return "", err
	}
	return firstChoice(resp)
}

func (g *OpenAIGateway) Stream(ctx context.Context, messages []chat.Message, onDelta func(string) error) (string, error) {
	var reply strings.Builder
	resp, err := g.llm.GenerateContent(ctx, toMessageContent(messages),
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			reply.Write(chunk)
			return onDelta(string(chunk))
		}),
	)
	if err != nil {
		return "", err
	}
	if reply.Len() > 0 {
		return reply.String(), nil
	}
	return firstChoice(resp)
}

func firstChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty response")
	}
	return resp.Choices[0].Content, nil
}

func toMessageContent(messages []chat.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch msg.Role {
		case chat.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case chat.RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(role, msg.Content))
	}
	return out
}
