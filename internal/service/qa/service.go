// Package qa answers user questions, serving canned and cached responses
// before falling back to the configured LLM.
package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coderbuddy/backend/internal/analysis/intent"
	"github.com/coderbuddy/backend/internal/cache"
	"github.com/coderbuddy/backend/internal/service/ai"
)

// ErrAIUnavailable signals a question that needs the LLM when no provider
// is configured.
var ErrAIUnavailable = errors.New("ai answering unavailable")

var systemPrompts = map[string]string{
	"technical": "You are a fast technical assistant. Provide concise, accurate code examples and explanations. Keep responses under 400 words unless specifically asked for more detail.",
	"general":   "You are a helpful assistant. Provide clear, concise answers. Keep responses under 300 words unless specifically asked for more detail.",
	"quick":     "Provide a brief, direct answer in 1-2 sentences.",
}

var quickResponses = map[string]string{
	"what is python":     "Python is a high-level, interpreted programming language known for its simplicity and readability. It's widely used for web development, data science, AI, and automation.",
	"what is javascript": "JavaScript is a programming language primarily used for web development to create interactive web pages and applications. It runs in browsers and on servers (Node.js).",
	"what is react":      "React is a popular JavaScript library for building user interfaces, especially web applications. It uses components and virtual DOM for efficient rendering.",
	"what is html":       "HTML (HyperText Markup Language) is the standard markup language for creating web pages. It uses tags to structure content like headings, paragraphs, and links.",
	"what is css":        "CSS (Cascading Style Sheets) is a language used to style and layout web pages created with HTML. It controls colors, fonts, spacing, and responsive design.",

	"difference between python and javascript": "Python is server-side focused with simple syntax, while JavaScript is primarily for web development. Python uses indentation; JavaScript uses brackets.",
}

// Answer is one Q&A result with provenance flags for the API response.
type Answer struct {
	Text        string `json:"answer"`
	Question    string `json:"question"`
	IsTechnical bool   `json:"isTechnical"`
	Cached      bool   `json:"cached"`
	Instant     bool   `json:"instant"`
}

// Service answers questions through a quick-response table, a response
// cache, and tiered LLM prompts.
type Service struct {
	client ai.Client
	cache  *cache.Cache
}

// NewService wires the Q&A service. client may be nil; only canned and
// cached answers work then.
func NewService(client ai.Client, responseCache *cache.Cache) *Service {
	return &Service{client: client, cache: responseCache}
}

// AnswerQuestion resolves a question, cheapest source first.
func (s *Service) AnswerQuestion(ctx context.Context, question, questionContext string) (Answer, error) {
	answer := Answer{
		Question:    question,
		IsTechnical: intent.IsTechnicalQuestion(question),
	}

	if text, ok := quickResponses[normalizeQuestion(question)]; ok {
		answer.Text = text
		answer.Instant = true
		return answer, nil
	}

	key := cacheKey(question, questionContext)
	if s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			answer.Text = text
			answer.Cached = true
			return answer, nil
		}
	}

	if s.client == nil {
		return Answer{}, ErrAIUnavailable
	}

	text, err := s.client.Generate(ctx, s.request(question, questionContext))
	if err != nil {
		return Answer{}, fmt.Errorf("answer question: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, text)
	}
	answer.Text = text
	return answer, nil
}

// InstantAnswer returns a canned or cached answer without touching the LLM.
func (s *Service) InstantAnswer(question, questionContext string) (Answer, bool) {
	answer := Answer{
		Question:    question,
		IsTechnical: intent.IsTechnicalQuestion(question),
	}

	if text, ok := quickResponses[normalizeQuestion(question)]; ok {
		answer.Text = text
		answer.Instant = true
		return answer, true
	}
	if s.cache != nil {
		if text, ok := s.cache.Get(cacheKey(question, questionContext)); ok {
			answer.Text = text
			answer.Cached = true
			return answer, true
		}
	}
	return Answer{}, false
}

// StreamAnswer streams an LLM answer chunk by chunk. Callers should try
// InstantAnswer first. The full answer is cached once the stream completes,
// via the returned finish callback.
func (s *Service) StreamAnswer(ctx context.Context, question, questionContext string) (ai.Stream, func(fullText string), error) {
	if s.client == nil {
		return nil, nil, ErrAIUnavailable
	}

	stream, err := s.client.Stream(ctx, s.request(question, questionContext))
	if err != nil {
		return nil, nil, fmt.Errorf("stream answer: %w", err)
	}

	key := cacheKey(question, questionContext)
	finish := func(fullText string) {
		if s.cache != nil && fullText != "" {
			s.cache.Set(key, fullText)
		}
	}
	return stream, finish, nil
}

// CacheSize reports memory-tier cache entries for the stats endpoint.
func (s *Service) CacheSize() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

func (s *Service) request(question, questionContext string) ai.Request {
	promptType := promptTypeFor(question)

	tier := ai.TierStandard
	if promptType == "quick" || promptType == "general" {
		tier = ai.TierFast
	}

	prompt := fmt.Sprintf("Question: %s\n", question)
	if questionContext != "" {
		prompt += fmt.Sprintf("Context: %s\n", questionContext)
	}
	prompt += "\nProvide a helpful, concise answer."

	return ai.Request{
		System: systemPrompts[promptType],
		Prompt: prompt,
		Tier:   tier,
	}
}

func promptTypeFor(question string) string {
	switch {
	case intent.IsQuickQuestion(question):
		return "quick"
	case intent.IsTechnicalQuestion(question):
		return "technical"
	default:
		return "general"
	}
}

func normalizeQuestion(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	replacer := strings.NewReplacer("?", "", ".", "", ",", "")
	return replacer.Replace(normalized)
}

func cacheKey(question, questionContext string) string {
	return question + "|" + questionContext
}
