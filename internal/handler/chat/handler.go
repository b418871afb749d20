package chat

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/service/ai"
	"github.com/zhouzirui/treat-or-hell/backend/pkg/utils"
)

// Responder produces a persona reply for one user message.
type Responder interface {
	GenerateReply(ctx context.Context, p *persona.Persona, userMessage string) (string, error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	responder    Responder
	personaStore persona.Store
}

// New 创建聊天处理器
func New(responder Responder, personaStore persona.Store) *Handler {
	return &Handler{
		responder:    responder,
		personaStore: personaStore,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/{persona}", h.handleChat)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat 生成一次角色回复
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	p, ok := h.personaStore.FindByID(chi.URLParam(r, "persona"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}

	var payload chatRequest
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.responder.GenerateReply(r.Context(), &p, payload.Message)
	if err != nil {
		status, message := classifyError(err)
		log.Printf("[chat] reply failed for persona=%s: %v", p.ID, err)
		utils.RespondError(w, status, message)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// classifyError maps a reply failure to an HTTP status and client-safe message.
func classifyError(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "chat provider timed out"
	}

	var gatewayErr *ai.GatewayError
	if errors.As(err, &gatewayErr) {
		return http.StatusBadGateway, "chat provider unavailable"
	}

	return http.StatusInternalServerError, "failed to generate reply"
}
