package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/service/ai"
)

type fakeStreamer struct {
	streaming bool
	chunks    []string
	err       error
}

func (f *fakeStreamer) StreamingEnabled() bool { return f.streaming }

func (f *fakeStreamer) StreamReply(_ context.Context, _ *persona.Persona, _ string, onDelta func(string) error) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, c := range f.chunks {
		if err := onDelta(c); err != nil {
			return "", err
		}
	}
	return strings.Join(f.chunks, ""), nil
}

func (f *fakeStreamer) GenerateReply(_ context.Context, _ *persona.Persona, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return strings.Join(f.chunks, ""), nil
}

func serveStream(t *testing.T, streamer ReplyStreamer, path, body string) (*httptest.ResponseRecorder, []StreamResponse) {
	t.Helper()

	r := chi.NewRouter()
	New(streamer, persona.NewMemoryStore(persona.Seed())).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var events []StreamResponse
	scanner := bufio.NewScanner(strings.NewReader(resp.Body.String()))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev StreamResponse
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("bad event %q: %v", line, err)
		}
		events = append(events, ev)
	}
	return resp, events
}

func eventNames(events []StreamResponse) string {
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Event)
	}
	return strings.Join(names, ",")
}

func TestStreamEmitsDeltas(t *testing.T) {
	streamer := &fakeStreamer{streaming: true, chunks: []string{"Well, ", "well, ", "well..."}}
	resp, events := serveStream(t, streamer, "/chat/devil/stream", `{"message":"hi"}`)

	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}
	if names := eventNames(events); names != "start,delta,delta,delta,message,end" {
		t.Fatalf("unexpected events %s", names)
	}
	if events[4].Content != "Well, well, well..." || events[4].Persona != "devil" {
		t.Fatalf("unexpected final message %+v", events[4])
	}
	if !events[5].Finished {
		t.Fatal("end event should be finished")
	}
}

func TestStreamFallsBackToSingleMessage(t *testing.T) {
	streamer := &fakeStreamer{chunks: []string{"Ho ho ho!"}}
	_, events := serveStream(t, streamer, "/chat/nicholas/stream", `{"message":"hi"}`)

	if names := eventNames(events); names != "start,message,end" {
		t.Fatalf("unexpected events %s", names)
	}
	if events[1].Content != "Ho ho ho!" {
		t.Fatalf("unexpected message %+v", events[1])
	}
}

func TestStreamReportsGatewayError(t *testing.T) {
	streamer := &fakeStreamer{streaming: true, err: &ai.GatewayError{Provider: "ark", Err: errors.New("secret detail")}}
	resp, events := serveStream(t, streamer, "/chat/angel/stream", `{"message":"hi"}`)

	if names := eventNames(events); names != "start,error" {
		t.Fatalf("unexpected events %s", names)
	}
	if events[1].Error != "chat provider unavailable" {
		t.Fatalf("unexpected error %q", events[1].Error)
	}
	if strings.Contains(resp.Body.String(), "secret detail") {
		t.Fatal("provider detail leaked to client")
	}
}

func TestStreamRejectsBadRequests(t *testing.T) {
	streamer := &fakeStreamer{streaming: true}

	resp, _ := serveStream(t, streamer, "/chat/krampus/stream", `{"message":"hi"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp, _ = serveStream(t, streamer, "/chat/devil/stream", `{"message":""}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
