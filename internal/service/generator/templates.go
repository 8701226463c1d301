package generator

import "github.com/coderbuddy/backend/internal/analysis/intent"

// TemplateFile is one pre-built file in a project template. Content may be
// empty, in which case the coder stage generates it.
type TemplateFile struct {
	Path    string `json:"path"`
	Purpose string `json:"purpose"`
	Content string `json:"-"`
}

// Template captures a pre-built project type served without any LLM call.
type Template struct {
	Type        intent.ProjectType `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Techstack   string             `json:"techstack"`
	Features    []string           `json:"features"`
	Files       []TemplateFile     `json:"files"`
}

// TemplateStore exposes template retrieval for the generation pipeline.
type TemplateStore interface {
	List() []Template
	FindByType(t intent.ProjectType) (Template, bool)
}

// MemoryTemplateStore implements TemplateStore with an in-memory slice.
type MemoryTemplateStore struct {
	items []Template
}

// NewMemoryTemplateStore returns a store preloaded with the supplied templates.
func NewMemoryTemplateStore(items []Template) *MemoryTemplateStore {
	return &MemoryTemplateStore{items: append([]Template(nil), items...)}
}

// List returns the template catalogue.
func (s *MemoryTemplateStore) List() []Template {
	return append([]Template(nil), s.items...)
}

// FindByType looks up a template by project type.
func (s *MemoryTemplateStore) FindByType(t intent.ProjectType) (Template, bool) {
	for _, item := range s.items {
		if item.Type == t {
			return item, true
		}
	}
	return Template{}, false
}

// Seed provides the default template catalogue.
func Seed() []Template {
	return []Template{
		{
			Type:        intent.ProjectTodo,
			Name:        "Modern Todo App",
			Description: "A sleek todo application with local storage",
			Techstack:   "HTML, CSS, JavaScript",
			Features:    []string{"Add tasks", "Mark complete", "Delete tasks", "Local storage", "Responsive design"},
			Files: []TemplateFile{
				{Path: "index.html", Purpose: "Main HTML structure", Content: todoHTML},
				{Path: "style.css", Purpose: "Styling and layout", Content: baseCSS + todoCSS},
				{Path: "script.js", Purpose: "JavaScript functionality", Content: todoJS},
			},
		},
		{
			Type:        intent.ProjectCalculator,
			Name:        "Modern Calculator",
			Description: "A colorful calculator with keyboard support",
			Techstack:   "HTML, CSS, JavaScript",
			Features:    []string{"Basic math operations", "Colorful design", "Keyboard support"},
			Files: []TemplateFile{
				{Path: "index.html", Purpose: "Calculator interface", Content: calculatorHTML},
				{Path: "style.css", Purpose: "Modern styling", Content: baseCSS + calculatorCSS},
				{Path: "script.js", Purpose: "Calculator logic", Content: calculatorJS},
			},
		},
		{
			Type:        intent.ProjectPortfolio,
			Name:        "Creative Portfolio",
			Description: "A personal portfolio website with modern design",
			Techstack:   "HTML, CSS, JavaScript",
			Features:    []string{"Hero section", "Projects showcase", "About section", "Contact form"},
			Files: []TemplateFile{
				{Path: "index.html", Purpose: "Main portfolio structure", Content: portfolioHTML},
				{Path: "style.css", Purpose: "Creative styling and animations", Content: baseCSS + portfolioCSS},
				{Path: "script.js", Purpose: "Interactive features", Content: portfolioJS},
			},
		},
		{
			Type:        intent.ProjectLanding,
			Name:        "Product Landing Page",
			Description: "A conversion-focused landing page",
			Techstack:   "HTML, CSS, JavaScript",
			Features:    []string{"Hero section", "Feature highlights", "Call to action"},
			Files: []TemplateFile{
				{Path: "index.html", Purpose: "Landing page structure", Content: landingHTML},
				{Path: "style.css", Purpose: "Landing page styling", Content: baseCSS + landingCSS},
				{Path: "script.js", Purpose: "Scroll and CTA interactions", Content: landingJS},
			},
		},
	}
}
