package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	projectHandler "github.com/coderbuddy/backend/internal/handler/project"
	qaHandler "github.com/coderbuddy/backend/internal/handler/qa"
	sessionHandler "github.com/coderbuddy/backend/internal/handler/session"
	"github.com/coderbuddy/backend/internal/handler/ws"
	middlewarePkg "github.com/coderbuddy/backend/internal/middleware"
	"github.com/coderbuddy/backend/internal/service/generator"
	"github.com/coderbuddy/backend/internal/service/monitor"
	qaService "github.com/coderbuddy/backend/internal/service/qa"
	"github.com/coderbuddy/backend/internal/workspace"
	"github.com/coderbuddy/backend/pkg/utils"
)

// Deps collects the services the router wires to routes.
type Deps struct {
	Monitor     *monitor.Service
	Generator   *generator.Service
	QA          *qaService.Service
	Files       *workspace.Store
	Hub         *ws.Hub
	RecentLimit int
	AIEnabled   bool
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	sessions := sessionHandler.New(deps.Monitor, deps.RecentLimit)
	projects := projectHandler.New(deps.Generator, deps.Monitor, deps.Files)
	qa := qaHandler.New(deps.QA)

	startedAt := time.Now()

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":        "ok",
				"uptimeSeconds": int64(time.Since(startedAt).Seconds()),
				"aiEnabled":     deps.AIEnabled,
				"cacheEntries":  deps.QA.CacheSize(),
			})
		})

		sessions.RegisterRoutes(api)
		projects.RegisterRoutes(api)
		qa.RegisterRoutes(api)

		if deps.Hub != nil {
			api.Get("/ws", deps.Hub.HandleWebSocket)
		}
	})

	return r
}
