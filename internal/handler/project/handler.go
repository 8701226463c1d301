package project

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/coderbuddy/backend/internal/service/generator"
	"github.com/coderbuddy/backend/internal/service/monitor"
	"github.com/coderbuddy/backend/internal/workspace"
	"github.com/coderbuddy/backend/pkg/utils"
)

// Handler drives project generation and exposes generated output.
type Handler struct {
	gen   *generator.Service
	mon   *monitor.Service
	files *workspace.Store
}

// New creates a project handler.
func New(gen *generator.Service, mon *monitor.Service, files *workspace.Store) *Handler {
	return &Handler{gen: gen, mon: mon, files: files}
}

// RegisterRoutes mounts the project routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/projects", h.handleGenerate)
	r.Get("/projects", h.handleListFiles)
}

// handleGenerate runs the full generation pipeline for a prompt. The
// response carries the result plus the final session state so the dashboard
// can render the run without a second request.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.Prompt = strings.TrimSpace(payload.Prompt)
	if payload.Prompt == "" {
		utils.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	result, err := h.gen.Generate(r.Context(), payload.Prompt)
	if err != nil {
		log.Printf("[project] generation failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, generator.ErrAIUnavailable) {
			status = http.StatusServiceUnavailable
		}
		body := map[string]any{"error": err.Error()}
		if result.SessionID != "" {
			body["sessionId"] = result.SessionID
			if session, getErr := h.mon.GetSession(r.Context(), result.SessionID); getErr == nil {
				body["session"] = session.View()
			}
		}
		utils.RespondJSON(w, status, body)
		return
	}

	body := map[string]any{"result": result}
	if session, getErr := h.mon.GetSession(r.Context(), result.SessionID); getErr == nil {
		body["session"] = session.View()
	}
	utils.RespondJSON(w, http.StatusCreated, body)
}

// handleListFiles returns the generated workspace tree with previews.
func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	entries, err := h.files.List()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"files": entries,
		"count": len(entries),
	})
}
