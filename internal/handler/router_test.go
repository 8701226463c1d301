package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coderbuddy/backend/internal/cache"
	"github.com/coderbuddy/backend/internal/service/generator"
	"github.com/coderbuddy/backend/internal/service/monitor"
	qaService "github.com/coderbuddy/backend/internal/service/qa"
	"github.com/coderbuddy/backend/internal/workspace"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	mon := monitor.NewService(monitor.Config{})
	files, err := workspace.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	responseCache, err := cache.New(t.TempDir(), 10)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	templates := generator.NewMemoryTemplateStore(generator.Seed())

	return NewRouter(Deps{
		Monitor:     mon,
		Generator:   generator.NewService(mon, templates, nil, files),
		QA:          qaService.NewService(nil, responseCache),
		Files:       files,
		RecentLimit: 20,
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Status    string `json:"status"`
		AIEnabled bool   `json:"aiEnabled"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("expected ok, got %q", body.Status)
	}
	if body.AIEnabled {
		t.Fatalf("expected AI disabled in this setup")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected allow-origin header")
	}
}

func TestRoutesAreMounted(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/api/sessions", "/api/projects", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code == http.StatusNotFound {
			t.Errorf("route %s not mounted", path)
		}
	}
}
