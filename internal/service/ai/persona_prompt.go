package ai

import (
	"strings"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
)

// PersonaPromptBuilder assembles the message sequence for one chat turn.
type PersonaPromptBuilder struct{}

// NewPersonaPromptBuilder creates a prompt builder.
func NewPersonaPromptBuilder() *PersonaPromptBuilder {
	return &PersonaPromptBuilder{}
}

// BuildSystemPrompt appends the behavior summary and the persona's steering
// clause to its description. Without a summary the description is used alone.
func (pb *PersonaPromptBuilder) BuildSystemPrompt(p *persona.Persona, behaviorSummary string) string {
	if behaviorSummary == "" {
		return p.Description
	}

	var builder strings.Builder
	builder.WriteString(p.Description)
	builder.WriteString(behaviorSummary)
	builder.WriteString("\n\n")
	builder.WriteString(p.Steering)
	return builder.String()
}

// Build returns [system, user example, assistant example, user live message].
// Downstream chat-completion consumers rely on this exact order.
func (pb *PersonaPromptBuilder) Build(p *persona.Persona, behaviorSummary, liveMessage string) []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: pb.BuildSystemPrompt(p, behaviorSummary)},
		{Role: chat.RoleUser, Content: p.ExampleIn},
		{Role: chat.RoleAssistant, Content: p.ExampleOut},
		{Role: chat.RoleUser, Content: liveMessage},
	}
}
