package intent

import "strings"

// ProjectType labels the template catalogue entry a prompt maps to.
type ProjectType string

const (
	ProjectTodo       ProjectType = "todo_app"
	ProjectCalculator ProjectType = "calculator"
	ProjectPortfolio  ProjectType = "portfolio"
	ProjectLanding    ProjectType = "landing_page"
	ProjectCustom     ProjectType = "custom"
)

var projectKeywords = map[ProjectType][]string{
	ProjectTodo:       {"todo", "to-do", "task", "tasks", "checklist", "list app"},
	ProjectCalculator: {"calculator", "calc", "math", "arithmetic"},
	ProjectPortfolio:  {"portfolio", "personal site", "personal website", "showcase", "resume site"},
	ProjectLanding:    {"landing", "landing page", "product page", "startup page", "marketing page"},
}

var technicalKeywords = []string{
	"code", "programming", "python", "javascript", "react", "api",
	"database", "sql", "html", "css", "debug", "error", "function",
	"variable", "algorithm", "data structure", "framework", "library",
	"git", "github", "deployment", "server", "backend", "frontend",
}

var projectVerbs = []string{
	"build", "create", "generate", "make", "develop", "scaffold",
	"website", "web app", "webapp", "site", "app", "page",
}

var quickKeywords = []string{"what is", "define", "meaning of", "difference between"}

// DetectProjectType maps a prompt to a known template type, or
// ProjectCustom when no bucket scores.
func DetectProjectType(prompt string) ProjectType {
	lower := strings.ToLower(prompt)

	best := ProjectCustom
	bestScore := 0
	// Stable bucket order keeps classification deterministic on ties.
	for _, pt := range []ProjectType{ProjectTodo, ProjectCalculator, ProjectPortfolio, ProjectLanding} {
		score := 0
		for _, kw := range projectKeywords[pt] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = pt
			bestScore = score
		}
	}
	return best
}

// IsTechnicalQuestion reports whether a question is programming related.
func IsTechnicalQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsQuickQuestion reports whether a question fits the brief-definition tier.
func IsQuickQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range quickKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsProjectRequest distinguishes build-me-something prompts from questions,
// used by the CLI to route between generation and Q&A.
func IsProjectRequest(prompt string) bool {
	if DetectProjectType(prompt) != ProjectCustom {
		return true
	}
	lower := strings.ToLower(prompt)
	score := 0
	for _, kw := range projectVerbs {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score >= 2
}
