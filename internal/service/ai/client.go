// Package ai abstracts the hosted LLM backends behind a small client
// interface so that generation and Q&A code stays provider-agnostic.
package ai

import (
	"context"
	"fmt"

	"github.com/coderbuddy/backend/internal/config"
)

// Tier selects between the fast model (templated fallbacks, quick answers)
// and the standard model (open-ended prompts).
type Tier int

const (
	TierFast Tier = iota
	TierStandard
)

// Request is one completion call.
type Request struct {
	System string
	Prompt string
	Tier   Tier
}

// Stream yields response text chunks; Recv returns io.EOF when exhausted.
type Stream interface {
	Recv() (string, error)
	Close()
}

// Client is a hosted LLM backend.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Stream(ctx context.Context, req Request) (Stream, error)
}

// NewClient builds the configured provider. Returns an error when the
// configuration names no usable provider; callers treat that as "AI off".
func NewClient(ctx context.Context, cfg config.AIConfig) (Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("no AI provider configured")
	}
	switch cfg.Provider {
	case config.ProviderArk:
		return newArkClient(ctx, cfg)
	case config.ProviderOpenAI:
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
