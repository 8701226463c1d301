package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/coderbuddy/backend/internal/analysis/intent"
	"github.com/coderbuddy/backend/internal/cache"
	"github.com/coderbuddy/backend/internal/config"
	"github.com/coderbuddy/backend/internal/service/ai"
	"github.com/coderbuddy/backend/internal/service/generator"
	"github.com/coderbuddy/backend/internal/service/monitor"
	"github.com/coderbuddy/backend/internal/service/qa"
	"github.com/coderbuddy/backend/internal/workspace"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--server" {
			fmt.Println("The dashboard is served by the api binary: go run ./cmd/api")
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
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

	var aiClient ai.Client
	if cfg.AI.Enabled() {
		aiClient, err = ai.NewClient(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI client: %v", err)
		}
	}

	templates := generator.NewMemoryTemplateStore(generator.Seed())
	gen := generator.NewService(mon, templates, aiClient, files)
	qaSvc := qa.NewService(aiClient, responseCache)

	// Print step transitions as the pipeline runs.
	sub := mon.Subscribe(func(event monitor.Event) {
		switch event.Type {
		case monitor.EventStepStarted:
			fmt.Printf("  -> %s: %s\n", event.Step.AgentName, event.Step.StepName)
		case monitor.EventStepError:
			fmt.Printf("  !! step failed: %s\n", event.Error)
		}
	})
	defer sub.Unsubscribe()

	runREPL(ctx, gen, qaSvc)
}

func runREPL(ctx context.Context, gen *generator.Service, qaSvc *qa.Service) {
	fmt.Println("Coder Buddy. Describe a website to build, or ask a question.")
	fmt.Println("Type 'quit' or 'exit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Println("Bye!")
			return
		}

		if intent.IsProjectRequest(line) {
			handleProject(ctx, gen, line)
		} else {
			handleQuestion(ctx, qaSvc, line)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func handleProject(ctx context.Context, gen *generator.Service, prompt string) {
	fmt.Println("Building project...")
	result, err := gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, generator.ErrAIUnavailable) {
			fmt.Println("No AI provider configured; only todo, calculator, portfolio and landing page templates are available.")
			return
		}
		fmt.Printf("Generation failed: %v\n", err)
		return
	}

	fmt.Printf("Done in %dms. Project %q written to %s\n", result.GenerationTimeMs, result.ProjectName, result.ProjectDir)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
}

func handleQuestion(ctx context.Context, qaSvc *qa.Service, question string) {
	answer, err := qaSvc.AnswerQuestion(ctx, question, "")
	if err != nil {
		if errors.Is(err, qa.ErrAIUnavailable) {
			fmt.Println("No AI provider configured; I can only answer a few common questions right now.")
			return
		}
		fmt.Printf("Answering failed: %v\n", err)
		return
	}

	fmt.Println(answer.Text)
	if answer.Cached {
		fmt.Println("(cached)")
	}
}
