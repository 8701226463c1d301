package generator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/coderbuddy/backend/internal/model/workflow"
	"github.com/coderbuddy/backend/internal/service/ai"
	"github.com/coderbuddy/backend/internal/service/monitor"
	"github.com/coderbuddy/backend/internal/workspace"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) Generate(_ context.Context, _ ai.Request) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) Stream(_ context.Context, _ ai.Request) (ai.Stream, error) {
	return nil, io.EOF
}

func setupService(t *testing.T, client ai.Client) (*Service, *monitor.Service, *workspace.Store) {
	t.Helper()
	mon := monitor.NewService(monitor.Config{})
	files, err := workspace.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	templates := NewMemoryTemplateStore(Seed())
	return NewService(mon, templates, client, files), mon, files
}

func TestGenerateFromTemplate(t *testing.T) {
	client := &fakeClient{response: "should not be called"}
	svc, mon, files := setupService(t, client)

	result, err := svc.Generate(context.Background(), "build me a todo app")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !result.Success || !result.FromTemplate {
		t.Fatalf("expected successful template generation, got %+v", result)
	}
	if len(result.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", result.Files)
	}
	if client.calls != 0 {
		t.Fatalf("template path must not call the LLM, got %d calls", client.calls)
	}

	// Files land under the session-suffixed project dir.
	data, err := os.ReadFile(filepath.Join(files.Root(), result.ProjectDir, "index.html"))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty template content")
	}

	session, err := mon.GetSession(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session.Status != workflow.StatusCompleted {
		t.Fatalf("expected completed session, got %s", session.Status)
	}
	if len(session.Steps) != 3 {
		t.Fatalf("expected planner/architect/coder steps, got %d", len(session.Steps))
	}
	for _, step := range session.Steps {
		if step.Status != workflow.StatusCompleted {
			t.Fatalf("step %s: expected completed, got %s", step.StepName, step.Status)
		}
	}
}

func TestGenerateCustomWithoutAI(t *testing.T) {
	svc, mon, _ := setupService(t, nil)

	result, err := svc.Generate(context.Background(), "build a recipe sharing community")
	if !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}

	// The failed run still leaves an errored session behind.
	session, getErr := mon.GetSession(context.Background(), result.SessionID)
	if getErr != nil {
		t.Fatalf("get session: %v", getErr)
	}
	if session.Status != workflow.StatusError {
		t.Fatalf("expected error session, got %s", session.Status)
	}
	if len(session.Steps) == 0 {
		t.Fatalf("expected the planner step to be recorded")
	}
	last := session.Steps[len(session.Steps)-1]
	if last.Status != workflow.StatusError {
		t.Fatalf("expected last step errored, got %s", last.Status)
	}
}

func TestGenerateCustomWithAI(t *testing.T) {
	client := &fakeClient{
		response: `{"name": "Recipe Hub", "description": "d", "techstack": "HTML", "features": ["share"], "files": [{"path": "index.html", "purpose": "main"}]}`,
	}
	svc, mon, _ := setupService(t, client)

	result, err := svc.Generate(context.Background(), "build a recipe sharing community")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.FromTemplate {
		t.Fatalf("expected custom generation")
	}
	if result.ProjectName != "Recipe Hub" {
		t.Fatalf("expected plan name, got %q", result.ProjectName)
	}
	// One call for the plan, one per file.
	if client.calls != 2 {
		t.Fatalf("expected 2 LLM calls, got %d", client.calls)
	}

	session, _ := mon.GetSession(context.Background(), result.SessionID)
	if session.Status != workflow.StatusCompleted {
		t.Fatalf("expected completed session, got %s", session.Status)
	}
}

func TestGenerateRecordsLLMFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	svc, mon, _ := setupService(t, client)

	result, err := svc.Generate(context.Background(), "build a recipe sharing community")
	if err == nil {
		t.Fatalf("expected error")
	}

	session, getErr := mon.GetSession(context.Background(), result.SessionID)
	if getErr != nil {
		t.Fatalf("get session: %v", getErr)
	}
	if session.Status != workflow.StatusError {
		t.Fatalf("expected error session, got %s", session.Status)
	}
}

func TestSeedCoversTemplateTypes(t *testing.T) {
	store := NewMemoryTemplateStore(Seed())
	if len(store.List()) != 4 {
		t.Fatalf("expected 4 seeded templates, got %d", len(store.List()))
	}
	for _, template := range store.List() {
		if len(template.Files) == 0 {
			t.Fatalf("template %s has no files", template.Name)
		}
		for _, file := range template.Files {
			if file.Content == "" {
				t.Fatalf("template %s file %s has no content", template.Name, file.Path)
			}
		}
	}
}
