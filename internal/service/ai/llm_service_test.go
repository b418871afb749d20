package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/chat"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
)

type fakeGateway struct {
	reply    string
	err      error
	received []chat.Message
	block    bool
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	f.received = messages
	if f.block {
		<-ctx.Done()
		return "", errors.New("request canceled")
	}
	return f.reply, f.err
}

type fakeStreamingGateway struct {
	fakeGateway
	chunks []string
}

func (f *fakeStreamingGateway) Stream(_ context.Context, messages []chat.Message, onDelta func(string) error) (string, error) {
	f.received = messages
	for _, c := range f.chunks {
		if err := onDelta(c); err != nil {
			return "", err
		}
	}
	return strings.Join(f.chunks, ""), nil
}

type fakeRecords struct {
	answers questionnaire.AnswerSet
}

func (f fakeRecords) LoadLatest(context.Context) questionnaire.AnswerSet {
	return f.answers
}

func devil() *persona.Persona {
	p, _ := persona.NewMemoryStore(persona.Seed()).FindByID("devil")
	return &p
}

func TestGenerateReplyPersonalizesPrompt(t *testing.T) {
	gateway := &fakeGateway{reply: "Pack your bags!"}
	records := fakeRecords{answers: questionnaire.AnswerSet{
		"Q2": "Googled aggressively",
		"Q1": "Submitted on time (solid responsible energy)",
	}}
	svc := NewService(gateway, records, questionnaire.Seed(), time.Second)

	reply, err := svc.GenerateReply(context.Background(), devil(), "How am I doing?")
	if err != nil {
		t.Fatalf("GenerateReply err: %v", err)
	}
	if reply != "Pack your bags!" {
		t.Fatalf("unexpected reply %q", reply)
	}

	system := gateway.received[0].Content
	first := strings.Index(system, "- Submitted on time (solid responsible energy)")
	second := strings.Index(system, "- Googled aggressively")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("behavior bullets missing or out of order:\n%s", system)
	}
	if !strings.HasSuffix(system, devil().Steering) {
		t.Fatal("steering clause missing")
	}
	if gateway.received[3].Content != "How am I doing?" {
		t.Fatalf("unexpected live message %q", gateway.received[3].Content)
	}
}

func TestGenerateReplyWithoutRecordUsesBareDescription(t *testing.T) {
	gateway := &fakeGateway{reply: "ok"}
	svc := NewService(gateway, fakeRecords{}, questionnaire.Seed(), time.Second)

	if _, err := svc.GenerateReply(context.Background(), devil(), "hi"); err != nil {
		t.Fatalf("GenerateReply err: %v", err)
	}
	if gateway.received[0].Content != devil().Description {
		t.Fatalf("expected generic persona prompt, got %q", gateway.received[0].Content)
	}
}

func TestGenerateReplyWrapsGatewayFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	svc := NewService(&fakeGateway{err: cause}, fakeRecords{}, questionnaire.Seed(), time.Second)

	_, err := svc.GenerateReply(context.Background(), devil(), "hi")
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Provider != "fake" || !errors.Is(err, cause) {
		t.Fatalf("unexpected error chain: %v", err)
	}
}

func TestGenerateReplyTimeout(t *testing.T) {
	svc := NewService(&fakeGateway{block: true}, fakeRecords{}, questionnaire.Seed(), 10*time.Millisecond)

	_, err := svc.GenerateReply(context.Background(), devil(), "hi")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestStreamReply(t *testing.T) {
	gateway := &fakeStreamingGateway{chunks: []string{"Ho ", "ho ", "ho!"}}
	svc := NewService(gateway, fakeRecords{}, questionnaire.Seed(), time.Second)
	if !svc.StreamingEnabled() {
		t.Fatal("expected streaming to be enabled")
	}

	var deltas []string
	reply, err := svc.StreamReply(context.Background(), devil(), "hi", func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamReply err: %v", err)
	}
	if reply != "Ho ho ho!" || len(deltas) != 3 {
		t.Fatalf("unexpected stream result %q %v", reply, deltas)
	}
}

func TestStreamReplyUnsupported(t *testing.T) {
	svc := NewService(&fakeGateway{}, fakeRecords{}, questionnaire.Seed(), time.Second)
	if svc.StreamingEnabled() {
		t.Fatal("plain gateway should not stream")
	}

	_, err := svc.StreamReply(context.Background(), devil(), "hi", func(string) error { return nil })
	if !errors.Is(err, ErrStreamingUnsupported) {
		t.Fatalf("expected ErrStreamingUnsupported, got %v", err)
	}
}
