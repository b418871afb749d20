package questionnaire

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
	"github.com/zhouzirui/treat-or-hell/backend/pkg/utils"
)

// TimestampLayout formats submission times in the server's local clock.
const TimestampLayout = "2006-01-02 15:04:05"

const missingPageHTML = "<h1>Error</h1><p>questionnaire_frontend.html file not found. Set QUESTIONNAIRE_PATH or place it under web/.</p>"

// RecordWriter persists a validated submission.
type RecordWriter interface {
	Persist(ctx context.Context, answers questionnaire.AnswerSet, timestamp string) error
}

// Handler 问卷相关的HTTP处理器
type Handler struct {
	catalog  *questionnaire.Catalog
	records  RecordWriter
	pagePath string
	now      func() time.Time
}

// New 创建问卷处理器
func New(catalog *questionnaire.Catalog, records RecordWriter, pagePath string) *Handler {
	return &Handler{
		catalog:  catalog,
		records:  records,
		pagePath: pagePath,
		now:      time.Now,
	}
}

// RegisterRoutes 注册问卷相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/questionnaire", h.handlePage)
	r.Get("/questions", h.handleQuestions)
	r.Post("/submit-questions", h.handleSubmit)
}

type submission struct {
	Answers map[string]string `json:"answers"`
}

type submitResponse struct {
	Status       string                  `json:"status"`
	Message      string                  `json:"message"`
	Timestamp    string                  `json:"timestamp"`
	Answers      questionnaire.AnswerSet `json:"answers"`
	SubmissionID string                  `json:"submissionId"`
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := os.ReadFile(h.pagePath)
	if err != nil {
		log.Printf("[questionnaire] page unavailable at %s: %v", h.pagePath, err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(missingPageHTML))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"instructions": questionnaire.Instructions,
		"questions":    h.catalog,
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submission
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	answers, err := h.catalog.Validate(payload.Answers)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	timestamp := h.now().Format(TimestampLayout)
	if err := h.records.Persist(r.Context(), answers, timestamp); err != nil {
		log.Printf("[questionnaire] failed to persist submission: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to save answers")
		return
	}

	submissionID := uuid.NewString()
	log.Printf("[questionnaire] recorded submission id=%s at %s", submissionID, timestamp)

	utils.RespondJSON(w, http.StatusOK, submitResponse{
		Status:       "success",
		Message:      "Your answers have been recorded!",
		Timestamp:    timestamp,
		Answers:      answers,
		SubmissionID: submissionID,
	})
}
