package generator

import (
	"strings"
	"testing"
)

func TestParsePlanWithCodeFences(t *testing.T) {
	raw := "```json\n{\"name\": \"My Site\", \"description\": \"d\", \"techstack\": \"HTML\", \"features\": [\"f\"], \"files\": [{\"path\": \"index.html\", \"purpose\": \"main\"}]}\n```"

	plan, err := parsePlan(raw)
	if err != nil {
		t.Fatalf("parse plan: %v", err)
	}
	if plan.Name != "My Site" {
		t.Fatalf("expected name, got %q", plan.Name)
	}
	if len(plan.Files) != 1 || plan.Files[0].Path != "index.html" {
		t.Fatalf("expected one file, got %+v", plan.Files)
	}
}

func TestParsePlanWithSurroundingProse(t *testing.T) {
	raw := "Here is your plan:\n{\"name\": \"Site\", \"files\": [{\"path\": \"a.html\", \"purpose\": \"p\"}]}\nLet me know!"

	plan, err := parsePlan(raw)
	if err != nil {
		t.Fatalf("parse plan: %v", err)
	}
	if plan.Name != "Site" {
		t.Fatalf("expected name, got %q", plan.Name)
	}
}

func TestParsePlanRejectsGarbage(t *testing.T) {
	if _, err := parsePlan("no json here"); err == nil {
		t.Fatalf("expected error for missing JSON")
	}
	if _, err := parsePlan("{\"name\": \"\"}"); err == nil {
		t.Fatalf("expected error for empty plan")
	}
	if _, err := parsePlan("{not valid json}"); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestTaskForSpecializesByExtension(t *testing.T) {
	html := taskFor(FileSpec{Path: "index.html", Purpose: "main"})
	if !strings.Contains(html.Description, "HTML") {
		t.Fatalf("expected HTML guidance, got %q", html.Description)
	}

	css := taskFor(FileSpec{Path: "style.css", Purpose: "styling"})
	if !strings.Contains(css.Description, "CSS") {
		t.Fatalf("expected CSS guidance, got %q", css.Description)
	}

	other := taskFor(FileSpec{Path: "data.json", Purpose: "seed data"})
	if !strings.Contains(other.Description, "seed data") {
		t.Fatalf("expected purpose fallback, got %q", other.Description)
	}
}

func TestProjectDirName(t *testing.T) {
	got := projectDirName("Modern Todo App", "abcdef12-3456")
	if got != "modern-todo-app-abcdef12" {
		t.Fatalf("unexpected dir name %q", got)
	}

	got = projectDirName("!!!", "short")
	if got != "project-short" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}
