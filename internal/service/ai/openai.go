package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/coderbuddy/backend/internal/config"
)

const (
	defaultOpenAIFastModel     = "gpt-4o-mini"
	defaultOpenAIStandardModel = openai.GPT4o
)

// openAIClient runs completions against the OpenAI chat API, retrying once
// on transient failures.
type openAIClient struct {
	client        *openai.Client
	fastModel     string
	standardModel string
	temperature   *float64
	maxTokens     int
	timeout       time.Duration
}

func newOpenAIClient(cfg config.AIConfig) (*openAIClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	fast := cfg.FastModel
	if fast == "" {
		fast = defaultOpenAIFastModel
	}
	standard := cfg.StandardModel
	if standard == "" {
		standard = defaultOpenAIStandardModel
	}

	maxTokens := 0
	if cfg.MaxTokens != nil {
		maxTokens = *cfg.MaxTokens
	}

	return &openAIClient{
		client:        openai.NewClient(cfg.OpenAIKey),
		fastModel:     fast,
		standardModel: standard,
		temperature:   cfg.Temperature,
		maxTokens:     maxTokens,
		timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

func (c *openAIClient) model(tier Tier) string {
	if tier == TierFast {
		return c.fastModel
	}
	return c.standardModel
}

func (c *openAIClient) request(req Request) openai.ChatCompletionRequest {
	out := openai.ChatCompletionRequest{
		Model: c.model(req.Tier),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens: c.maxTokens,
	}
	if c.temperature != nil {
		out.Temperature = float32(*c.temperature)
	}
	return out
}

func (c *openAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, c.request(req))
	if err != nil && shouldRetry(err) {
		log.Printf("[ai] openai call failed, retrying once: %v", err)
		time.Sleep(time.Second)
		resp, err = c.client.CreateChatCompletion(ctx, c.request(req))
	}
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Stream(ctx context.Context, req Request) (Stream, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.request(req))
	if err != nil {
		return nil, fmt.Errorf("openai stream: %w", err)
	}
	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *openAIStream) Close() {
	s.stream.Close()
}

// shouldRetry reports whether the failure looks transient.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit",
		"500 internal server error",
		"502 bad gateway",
		"503 service unavailable",
		"504 gateway timeout",
		"timeout",
		"connection reset by peer",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
