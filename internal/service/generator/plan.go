package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FileSpec names one file the plan calls for.
type FileSpec struct {
	Path    string `json:"path"`
	Purpose string `json:"purpose"`
}

// Plan is the planner stage output describing the project to build.
type Plan struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Techstack   string     `json:"techstack"`
	Features    []string   `json:"features"`
	Files       []FileSpec `json:"files"`
}

// Task is one coder work item produced by the architect stage.
type Task struct {
	Filepath    string `json:"filepath"`
	Description string `json:"taskDescription"`
}

// parsePlan extracts a Plan from LLM output, tolerating markdown code
// fences and leading prose around the JSON object.
func parsePlan(raw string) (Plan, error) {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return Plan{}, fmt.Errorf("no JSON object in model output")
	}

	var plan Plan
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &plan); err != nil {
		return Plan{}, fmt.Errorf("parse plan JSON: %w", err)
	}
	if plan.Name == "" || len(plan.Files) == 0 {
		return Plan{}, fmt.Errorf("plan missing name or files")
	}
	return plan, nil
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// taskFor describes how to implement a planned file, specialized per
// extension so the coder prompt stays focused.
func taskFor(file FileSpec) Task {
	var desc string
	switch {
	case strings.HasSuffix(file.Path, ".html"):
		desc = fmt.Sprintf("Create %s with modern HTML structure, semantic elements, and proper meta tags.", file.Path)
	case strings.HasSuffix(file.Path, ".css"):
		desc = fmt.Sprintf("Create %s with modern CSS, responsive design, and attractive styling.", file.Path)
	case strings.HasSuffix(file.Path, ".js"):
		desc = fmt.Sprintf("Create %s with clean JavaScript, proper event handling, and modern ES6+ features.", file.Path)
	default:
		desc = fmt.Sprintf("Create %s implementing %s", file.Path, file.Purpose)
	}
	return Task{Filepath: file.Path, Description: desc}
}
