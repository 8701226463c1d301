package session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coderbuddy/backend/internal/model/workflow"
	"github.com/coderbuddy/backend/internal/service/monitor"
	"github.com/coderbuddy/backend/pkg/utils"
)

// Handler exposes the workflow registry over HTTP.
type Handler struct {
	mon          *monitor.Service
	defaultLimit int
}

// New creates a session handler. defaultLimit caps the list endpoint when
// the client does not pass one.
func New(mon *monitor.Service, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &Handler{mon: mon, defaultLimit: defaultLimit}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
}

// handleListSessions returns the most recent sessions, newest first.
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if parsed > 0 {
			limit = parsed
		}
	}

	sessions := h.mon.RecentSessions(r.Context(), limit)
	views := make([]workflow.SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, s.View())
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessions": views,
		"count":    len(views),
	})
}

// handleGetSession returns one session by id.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.mon.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, monitor.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, session.View())
}
