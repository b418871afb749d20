package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
)

// EinoGateway runs prompts through an eino chain ending in a ChatModel
// (the Ark model in production).
type EinoGateway struct {
	name  string
	chain compose.Runnable[[]*schema.Message, *schema.Message]
}

// NewEinoGateway compiles a chain around chatModel.
func NewEinoGateway(ctx context.Context, name string, chatModel model.ChatModel) (*EinoGateway, error) {
	chain := compose.NewChain[[]*schema.Message, *schema.Message]()
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &EinoGateway{name: name, chain: runnable}, nil
}

func (g *EinoGateway) Name() string {
	return g.name
}

func (g *EinoGateway) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	response, err := g.chain.Invoke(ctx, toSchemaMessages(messages))
	if err != nil {
		return "", err
	}
	if response == nil {
		return "", errors.New("empty response")
	}
	return response.Content, nil
}

func (g *EinoGateway) Stream(ctx context.Context, messages []chat.Message, onDelta func(string) error) (string, error) {
	stream, err := g.chain.Stream(ctx, toSchemaMessages(messages))
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			if err := onDelta(chunk.Content); err != nil {
				return "", err
			}
		}
	}

	if len(chunks) == 0 {
		return "", errors.New("empty response")
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

func toSchemaMessages(messages []chat.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			out = append(out, schema.SystemMessage(msg.Content))
		case chat.RoleAssistant:
			out = append(out, schema.AssistantMessage(msg.Content, nil))
		default:
			out = append(out, schema.UserMessage(msg.Content))
		}
	}
	return out
}
