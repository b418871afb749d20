package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
	"github.com/zhouzirui/treat-or-hell/backend/internal/service/behavior"
)

// ErrStreamingUnsupported is returned by StreamReply when the gateway cannot stream.
var ErrStreamingUnsupported = errors.New("streaming not supported by chat provider")

// BehaviorSource yields the latest stored questionnaire answers, or nil.
type BehaviorSource interface {
	LoadLatest(ctx context.Context) questionnaire.AnswerSet
}

// Service answers persona chat messages, personalized with the latest
// questionnaire submission.
type Service struct {
	gateway Gateway
	records BehaviorSource
	catalog *questionnaire.Catalog
	prompts *PersonaPromptBuilder
	timeout time.Duration
}

// NewService creates a new AI service instance. A non-positive timeout leaves
// gateway calls bounded only by the request context.
func NewService(gateway Gateway, records BehaviorSource, catalog *questionnaire.Catalog, timeout time.Duration) *Service {
	return &Service{
		gateway: gateway,
		records: records,
		catalog: catalog,
		prompts: NewPersonaPromptBuilder(),
		timeout: timeout,
	}
}

// StreamingEnabled 指示网关是否支持流式输出。
func (s *Service) StreamingEnabled() bool {
	_, ok := s.gateway.(StreamingGateway)
	return ok
}

// BuildMessages assembles the prompt for one turn from the current record.
func (s *Service) BuildMessages(ctx context.Context, p *persona.Persona, userMessage string) []chat.Message {
	summary := behavior.Summarize(s.catalog, s.records.LoadLatest(ctx))
	return s.prompts.Build(p, summary, userMessage)
}

// GenerateReply produces the persona's reply to userMessage.
func (s *Service) GenerateReply(ctx context.Context, p *persona.Persona, userMessage string) (string, error) {
	messages := s.BuildMessages(ctx, p, userMessage)

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	reply, err := s.gateway.Complete(callCtx, messages)
	if err != nil {
		return "", s.wrapError(callCtx, err)
	}

	log.Printf("[ai] generated reply for persona=%s, provider=%s, length=%d", p.ID, s.gateway.Name(), len(reply))
	return reply, nil
}

// StreamReply streams the persona's reply through onDelta and returns the full text.
func (s *Service) StreamReply(ctx context.Context, p *persona.Persona, userMessage string, onDelta func(string) error) (string, error) {
	streamer, ok := s.gateway.(StreamingGateway)
	if !ok {
		return "", ErrStreamingUnsupported
	}

	messages := s.BuildMessages(ctx, p, userMessage)

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	reply, err := streamer.Stream(callCtx, messages, onDelta)
	if err != nil {
		return "", s.wrapError(callCtx, err)
	}

	log.Printf("[ai] streamed reply for persona=%s, provider=%s, length=%d", p.ID, s.gateway.Name(), len(reply))
	return reply, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) wrapError(callCtx context.Context, err error) error {
	if ctxErr := callCtx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %v", ctxErr, err)
	}
	return &GatewayError{Provider: s.gateway.Name(), Err: err}
}
