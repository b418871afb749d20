package chat

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 54 * time.Second
)

// WebSocketHandler 通过WebSocket提供角色对话
type WebSocketHandler struct {
	responder    Responder
	personaStore persona.Store
	upgrader     websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(responder Responder, personaStore persona.Store) *WebSocketHandler {
	return &WebSocketHandler{
		responder:    responder,
		personaStore: personaStore,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/chat/{persona}", h.handleWebSocket)
}

type outgoingFrame struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	p, ok := h.personaStore.FindByID(chi.URLParam(r, "persona"))
	if !ok {
		http.Error(w, "persona not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("[ws] connection %s opened for persona=%s", connID, p.ID)
	defer log.Printf("[ws] connection %s closed", connID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	pingDone := make(chan struct{})
	go func() {
		defer close(pingDone)
		h.pingLoop(ctx, conn)
	}()
	defer func() {
		cancel()
		<-pingDone
	}()

	for {
		var msg chatRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error on %s: %v", connID, err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if err := conn.WriteJSON(h.respond(ctx, &p, msg.Message)); err != nil {
			log.Printf("[ws] write failed on %s: %v", connID, err)
			return
		}
	}
}

func (h *WebSocketHandler) respond(ctx context.Context, p *persona.Persona, message string) outgoingFrame {
	if strings.TrimSpace(message) == "" {
		return outgoingFrame{Error: "message is required"}
	}

	reply, err := h.responder.GenerateReply(ctx, p, message)
	if err != nil {
		log.Printf("[ws] reply failed for persona=%s: %v", p.ID, err)
		_, clientMsg := classifyError(err)
		return outgoingFrame{Error: clientMsg}
	}
	return outgoingFrame{Reply: reply}
}

// pingLoop 定期发送ping消息
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
