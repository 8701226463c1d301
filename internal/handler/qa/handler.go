package qa

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	qaService "github.com/coderbuddy/backend/internal/service/qa"
	"github.com/coderbuddy/backend/pkg/utils"
)

// Handler exposes Q&A over plain JSON and Server-Sent Events.
type Handler struct {
	svc *qaService.Service
}

// New creates a Q&A handler.
func New(svc *qaService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the Q&A routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/qa", h.handleAnswer)
	r.Get("/qa/stream", h.handleStream)
}

// handleAnswer resolves a question in one round trip.
func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.Question = strings.TrimSpace(payload.Question)
	if payload.Question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.svc.AnswerQuestion(r.Context(), payload.Question, payload.Context)
	if err != nil {
		if errors.Is(err, qaService.ErrAIUnavailable) {
			utils.RespondError(w, http.StatusServiceUnavailable, "ai answering unavailable")
			return
		}
		log.Printf("[qa] answer failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "answering failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, answer)
}

// handleStream streams an answer over SSE. Canned and cached answers arrive
// as a single complete event; LLM answers arrive chunk by chunk.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.URL.Query().Get("question"))
	questionContext := r.URL.Query().Get("context")
	if question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question query parameter is required")
		return
	}

	events, ok := utils.NewEventWriter(w)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events.Send("start", map[string]string{"question": question})

	if answer, found := h.svc.InstantAnswer(question, questionContext); found {
		events.Send("complete", answer)
		return
	}

	stream, finish, err := h.svc.StreamAnswer(r.Context(), question, questionContext)
	if err != nil {
		events.Send("error", map[string]string{"message": err.Error()})
		return
	}
	defer stream.Close()

	events.Send("thinking", map[string]string{"message": "generating answer"})

	var full strings.Builder
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			log.Printf("[qa] stream recv failed: %v", recvErr)
			events.Send("error", map[string]string{"message": "streaming failed"})
			return
		}
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		events.Send("chunk", map[string]string{"text": chunk})
	}

	finish(full.String())
	events.Send("complete", qaService.Answer{
		Text:     full.String(),
		Question: question,
	})
}
