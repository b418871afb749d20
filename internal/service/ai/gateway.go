package ai

import (
	"context"
	"fmt"

	"github.com/zhouzirui/treat-or-hell/backend/internal/config"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
)

// Gateway sends an ordered, role-tagged prompt to a chat model and returns
// the single reply.
type Gateway interface {
	Name() string
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

// StreamingGateway is a Gateway that can emit the reply incrementally.
// onDelta receives each content chunk; the concatenated reply is returned.
type StreamingGateway interface {
	Gateway
	Stream(ctx context.Context, messages []chat.Message, onDelta func(string) error) (string, error)
}

// GatewayError reports a failed chat completion (network, auth, quota, timeout).
type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s chat completion failed: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGateway builds the gateway for the configured provider.
func NewGateway(ctx context.Context, cfg config.AIConfig) (Gateway, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("credentials for provider %q are not configured", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		gateway, err := NewOpenAIGateway(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return gateway, nil
	case config.ProviderArk:
		chatModel, err := cfg.Ark.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create ark chat model: %w", err)
		}
		gateway, err := NewEinoGateway(ctx, config.ProviderArk, chatModel)
		if err != nil {
			return nil, err
		}
		return gateway, nil
	case config.ProviderAnthropic:
		return NewAnthropicGateway(cfg.Anthropic), nil
	default:
		return nil, fmt.Errorf("unsupported chat provider %q", cfg.Provider)
	}
}
