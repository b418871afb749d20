package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/service/ai"
	"github.com/zhouzirui/treat-or-hell/backend/pkg/utils"
)

// ReplyStreamer is the slice of the AI service the stream handler needs.
type ReplyStreamer interface {
	StreamingEnabled() bool
	StreamReply(ctx context.Context, p *persona.Persona, userMessage string, onDelta func(string) error) (string, error)
	GenerateReply(ctx context.Context, p *persona.Persona, userMessage string) (string, error)
}

// Handler manages streaming AI responses via Server-Sent Events
type Handler struct {
	aiService ReplyStreamer
	personas  persona.Store
}

// New creates a new stream handler
func New(aiSvc ReplyStreamer, personas persona.Store) *Handler {
	return &Handler{
		aiService: aiSvc,
		personas:  personas,
	}
}

// RegisterRoutes 注册流式聊天路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/{persona}/stream", h.handleStream)
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event    string `json:"event"`
	Persona  string `json:"persona,omitempty"`
	Content  string `json:"content,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	p, ok := h.personas.FindByID(chi.URLParam(r, "persona"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := h.HandleStreamRequest(r.Context(), w, &p, payload.Message); err != nil {
		log.Printf("[stream] error handling request: %v", err)
	}
}

// HandleStreamRequest writes the persona's reply to w as a sequence of SSE events.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, p *persona.Persona, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	h.sendSSE(w, flusher, StreamResponse{
		Event:   "start",
		Persona: p.ID,
		Content: fmt.Sprintf("%s's reply:", p.Name),
	})

	reply, err := h.dispatchAIResponse(ctx, w, flusher, p, userMessage)
	if err != nil {
		h.sendSSEError(w, flusher, clientMessage(err))
		return err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:   "message",
		Persona: p.ID,
		Content: reply,
	})
	h.sendSSE(w, flusher, StreamResponse{
		Event:    "end",
		Persona:  p.ID,
		Finished: true,
	})

	log.Printf("[stream] completed response for persona=%s", p.ID)
	return nil
}

// dispatchAIResponse streams deltas when the provider can, and falls back to a single completion.
func (h *Handler) dispatchAIResponse(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, p *persona.Persona, userMessage string) (string, error) {
	if !h.aiService.StreamingEnabled() {
		return h.aiService.GenerateReply(ctx, p, userMessage)
	}

	return h.aiService.StreamReply(ctx, p, userMessage, func(delta string) error {
		if delta == "" {
			return nil
		}
		return utils.SendSSEChunk(w, flusher, StreamResponse{
			Event:   "delta",
			Persona: p.ID,
			Content: delta,
		})
	})
}

// sendSSE sends a Server-Sent Event
func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	if err := utils.SendSSEChunk(w, flusher, response); err != nil {
		log.Printf("[stream] failed to send %s event: %v", response.Event, err)
	}
}

// sendSSEError sends an error via Server-Sent Events
func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{
		Event: "error",
		Error: errorMsg,
	})
}

func clientMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "chat provider timed out"
	}
	var gatewayErr *ai.GatewayError
	if errors.As(err, &gatewayErr) {
		return "chat provider unavailable"
	}
	return "AI generation failed"
}
