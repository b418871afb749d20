package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/treat-or-hell/backend/internal/handler/chat"
	"github.com/zhouzirui/treat-or-hell/backend/internal/handler/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/handler/questionnaire"
	"github.com/zhouzirui/treat-or-hell/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/treat-or-hell/backend/internal/middleware"
	personaModel "github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	questionnaireModel "github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
	aiService "github.com/zhouzirui/treat-or-hell/backend/internal/service/ai"
	"github.com/zhouzirui/treat-or-hell/backend/pkg/utils"
)

// Endpoints is advertised on the root route.
var Endpoints = []string{
	"/questions",
	"/submit-questions",
	"/questionnaire",
	"/chat/{persona}",
	"/chat/{persona}/stream",
	"/ws/chat/{persona}",
	"/personas",
}

// Deps groups the services the router wires into handlers.
type Deps struct {
	Catalog           *questionnaireModel.Catalog
	Records           questionnaire.RecordWriter
	Personas          personaModel.Store
	AI                *aiService.Service
	QuestionnairePage string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", handleRoot)
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	questionnaire.New(deps.Catalog, deps.Records, deps.QuestionnairePage).RegisterRoutes(r)
	persona.New(deps.Personas).RegisterRoutes(r)

	// Chat routes need a configured provider.
	if deps.AI == nil {
		unavailable := func(w http.ResponseWriter, r *http.Request) {
			utils.RespondError(w, http.StatusServiceUnavailable, "chat provider not configured")
		}
		r.Post("/chat/{persona}", unavailable)
		r.Post("/chat/{persona}/stream", unavailable)
		r.Get("/ws/chat/{persona}", unavailable)
		return r
	}

	chat.New(deps.AI, deps.Personas).RegisterRoutes(r)
	chat.NewWebSocketHandler(deps.AI, deps.Personas).RegisterRoutes(r)
	stream.New(deps.AI, deps.Personas).RegisterRoutes(r)

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":   "TreatOrHell API",
		"docs":      "/questionnaire",
		"endpoints": Endpoints,
	})
}
