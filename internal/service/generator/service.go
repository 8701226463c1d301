package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coderbuddy/backend/internal/analysis/intent"
	"github.com/coderbuddy/backend/internal/service/ai"
	"github.com/coderbuddy/backend/internal/service/monitor"
	"github.com/coderbuddy/backend/internal/workspace"
)

// ErrAIUnavailable signals that a prompt needs the LLM path but no provider
// is configured. Template-backed project types still work without one.
var ErrAIUnavailable = errors.New("ai generation unavailable")

const (
	plannerAgent   = "Planner"
	architectAgent = "Architect"
	coderAgent     = "Coder"
)

const planSystemPrompt = "You are a project planner for small static websites. Respond with ONLY a JSON object."

const planPromptTemplate = `Create a project plan for: %s

Respond with ONLY a JSON object:
{
  "name": "Project Name",
  "description": "Brief description",
  "techstack": "Technologies to use",
  "features": ["feature1", "feature2", "feature3"],
  "files": [
    {"path": "index.html", "purpose": "Main structure"},
    {"path": "style.css", "purpose": "Styling"},
    {"path": "script.js", "purpose": "Functionality"}
  ]
}`

// Result summarizes one generation run for API and CLI callers.
type Result struct {
	SessionID        string   `json:"sessionId"`
	Success          bool     `json:"success"`
	ProjectName      string   `json:"projectName"`
	ProjectDir       string   `json:"projectDir"`
	Files            []string `json:"files"`
	FromTemplate     bool     `json:"fromTemplate"`
	GenerationTimeMs int64    `json:"generationTimeMs"`
}

// Service runs the planner/architect/coder pipeline, recording every stage
// as a monitor step under a single workflow session.
type Service struct {
	mon       *monitor.Service
	templates TemplateStore
	client    ai.Client
	files     *workspace.Store
}

// NewService wires the generation pipeline. client may be nil; only the
// template path works then.
func NewService(mon *monitor.Service, templates TemplateStore, client ai.Client, files *workspace.Store) *Service {
	return &Service{
		mon:       mon,
		templates: templates,
		client:    client,
		files:     files,
	}
}

// Generate builds a project for the prompt, preferring the template
// catalogue and falling back to LLM generation for custom requests.
func (s *Service) Generate(ctx context.Context, userPrompt string) (Result, error) {
	start := time.Now()
	sessionID := uuid.NewString()

	if _, err := s.mon.StartSession(ctx, sessionID, userPrompt); err != nil {
		return Result{}, fmt.Errorf("start session: %w", err)
	}

	result, err := s.run(ctx, sessionID, userPrompt)
	if err != nil {
		if stepErr := s.mon.ErrorStep(ctx, sessionID, err.Error()); stepErr != nil &&
			!errors.Is(stepErr, monitor.ErrNoSteps) && !errors.Is(stepErr, monitor.ErrStepFinished) {
			log.Printf("[generator] record step error failed: %v", stepErr)
		}
		if sessErr := s.mon.ErrorSession(ctx, sessionID, err.Error()); sessErr != nil {
			log.Printf("[generator] record session error failed: %v", sessErr)
		}
		return Result{SessionID: sessionID}, err
	}

	if err := s.mon.CompleteSession(ctx, sessionID, "Project completed successfully"); err != nil {
		log.Printf("[generator] complete session failed: %v", err)
	}

	result.SessionID = sessionID
	result.Success = true
	result.GenerationTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

func (s *Service) run(ctx context.Context, sessionID, userPrompt string) (Result, error) {
	projectType := intent.DetectProjectType(userPrompt)
	template, fromTemplate := s.templates.FindByType(projectType)

	plan, err := s.planStage(ctx, sessionID, userPrompt, template, fromTemplate)
	if err != nil {
		return Result{}, err
	}

	tasks, err := s.architectStage(ctx, sessionID, plan)
	if err != nil {
		return Result{}, err
	}

	return s.codeStage(ctx, sessionID, plan, tasks, template, fromTemplate)
}

func (s *Service) planStage(ctx context.Context, sessionID, userPrompt string, template Template, fromTemplate bool) (Plan, error) {
	label := "Analyzing request with templates"
	if !fromTemplate {
		label = "Planning custom project"
	}
	if err := s.mon.StartStep(ctx, sessionID, plannerAgent, label); err != nil {
		return Plan{}, fmt.Errorf("start planner step: %w", err)
	}

	var plan Plan
	if fromTemplate {
		plan = planFromTemplate(template)
	} else {
		if s.client == nil {
			return Plan{}, ErrAIUnavailable
		}
		raw, err := s.client.Generate(ctx, ai.Request{
			System: planSystemPrompt,
			Prompt: fmt.Sprintf(planPromptTemplate, userPrompt),
			Tier:   ai.TierFast,
		})
		if err != nil {
			return Plan{}, fmt.Errorf("plan generation: %w", err)
		}
		plan, err = parsePlan(raw)
		if err != nil {
			return Plan{}, err
		}
	}

	if err := s.mon.CompleteStep(ctx, sessionID, planSummary(plan)); err != nil {
		log.Printf("[generator] complete planner step failed: %v", err)
	}
	return plan, nil
}

func (s *Service) architectStage(ctx context.Context, sessionID string, plan Plan) ([]Task, error) {
	if err := s.mon.StartStep(ctx, sessionID, architectAgent, "Creating implementation tasks"); err != nil {
		return nil, fmt.Errorf("start architect step: %w", err)
	}

	tasks := make([]Task, 0, len(plan.Files))
	for _, file := range plan.Files {
		tasks = append(tasks, taskFor(file))
	}

	if err := s.mon.CompleteStep(ctx, sessionID, fmt.Sprintf("%d implementation tasks", len(tasks))); err != nil {
		log.Printf("[generator] complete architect step failed: %v", err)
	}
	return tasks, nil
}

func (s *Service) codeStage(ctx context.Context, sessionID string, plan Plan, tasks []Task, template Template, fromTemplate bool) (Result, error) {
	if err := s.mon.StartStep(ctx, sessionID, coderAgent, "Generating files"); err != nil {
		return Result{}, fmt.Errorf("start coder step: %w", err)
	}

	projectDir := projectDirName(plan.Name, sessionID)
	written := make([]string, 0, len(tasks))
	for _, task := range tasks {
		content, err := s.fileContent(ctx, plan, task, template, fromTemplate)
		if err != nil {
			return Result{}, fmt.Errorf("generate %s: %w", task.Filepath, err)
		}
		relPath := projectDir + "/" + task.Filepath
		if err := s.files.WriteFile(relPath, content); err != nil {
			return Result{}, err
		}
		written = append(written, task.Filepath)
	}

	if err := s.mon.CompleteStep(ctx, sessionID, fmt.Sprintf("%d files generated", len(written))); err != nil {
		log.Printf("[generator] complete coder step failed: %v", err)
	}

	return Result{
		ProjectName:  plan.Name,
		ProjectDir:   projectDir,
		Files:        written,
		FromTemplate: fromTemplate,
	}, nil
}

func (s *Service) fileContent(ctx context.Context, plan Plan, task Task, template Template, fromTemplate bool) (string, error) {
	if fromTemplate {
		for _, file := range template.Files {
			if file.Path == task.Filepath && file.Content != "" {
				return file.Content, nil
			}
		}
	}

	if s.client == nil {
		return "", ErrAIUnavailable
	}
	content, err := s.client.Generate(ctx, ai.Request{
		System: "You generate clean, modern code for static websites. Respond with the file content only, no explanation.",
		Prompt: fmt.Sprintf("Generate content for %s in project %q (%s). %s Features: %s.",
			task.Filepath, plan.Name, plan.Description, task.Description, strings.Join(plan.Features, ", ")),
		Tier: ai.TierFast,
	})
	if err != nil {
		return "", err
	}
	return stripCodeFences(content), nil
}

func planFromTemplate(template Template) Plan {
	files := make([]FileSpec, 0, len(template.Files))
	for _, f := range template.Files {
		files = append(files, FileSpec{Path: f.Path, Purpose: f.Purpose})
	}
	return Plan{
		Name:        template.Name,
		Description: template.Description,
		Techstack:   template.Techstack,
		Features:    template.Features,
		Files:       files,
	}
}

func planSummary(plan Plan) string {
	return fmt.Sprintf("plan %q with %d files", plan.Name, len(plan.Files))
}

// projectDirName builds a filesystem-safe directory name from the project
// name plus a session-id suffix to keep runs distinct.
func projectDirName(name, sessionID string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "project"
	}
	suffix := sessionID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return slug + "-" + suffix
}
