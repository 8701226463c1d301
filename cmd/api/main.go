package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/coderbuddy/backend/internal/cache"
	"github.com/coderbuddy/backend/internal/config"
	"github.com/coderbuddy/backend/internal/handler"
	"github.com/coderbuddy/backend/internal/handler/ws"
	"github.com/coderbuddy/backend/internal/service/ai"
	"github.com/coderbuddy/backend/internal/service/generator"
	"github.com/coderbuddy/backend/internal/service/monitor"
	"github.com/coderbuddy/backend/internal/service/qa"
	"github.com/coderbuddy/backend/internal/workspace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	responseCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.MaxMemoryEntries)
	if err != nil {
		log.Fatalf("failed to initialize response cache: %v", err)
	}

	files, err := workspace.NewStore(cfg.Workspace.Root)
	if err != nil {
		log.Fatalf("failed to initialize workspace: %v", err)
	}

	mon := monitor.NewService(monitor.Config{MaxSessions: cfg.Monitor.MaxSessions})

	// Initialize AI client; template generation and canned answers still
	// work without one.
	var aiClient ai.Client
	if cfg.AI.Enabled() {
		aiClient, err = ai.NewClient(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI client: %v", err)
			log.Println("continuing without AI functionality")
		} else {
			log.Printf("AI client initialized, provider=%s", cfg.AI.Provider)
		}
	} else {
		log.Println("AI credentials not configured, running in template-only mode")
	}

	templates := generator.NewMemoryTemplateStore(generator.Seed())
	gen := generator.NewService(mon, templates, aiClient, files)
	qaSvc := qa.NewService(aiClient, responseCache)

	hub := ws.NewHub(mon)
	go hub.Run(ctx)

	router := handler.NewRouter(handler.Deps{
		Monitor:     mon,
		Generator:   gen,
		QA:          qaSvc,
		Files:       files,
		Hub:         hub,
		RecentLimit: cfg.Monitor.RecentLimit,
		AIEnabled:   aiClient != nil,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Coder Buddy backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
