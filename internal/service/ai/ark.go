package ai

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/coderbuddy/backend/internal/config"
)

// arkClient runs completions through compiled eino chains over Ark chat
// models, one chain per tier.
type arkClient struct {
	fast     compose.Runnable[map[string]any, *schema.Message]
	standard compose.Runnable[map[string]any, *schema.Message]
	timeout  time.Duration
}

func newArkClient(ctx context.Context, cfg config.AIConfig) (*arkClient, error) {
	standard, err := compileArkChain(ctx, cfg, cfg.StandardModel)
	if err != nil {
		return nil, err
	}

	fast := standard
	if cfg.FastModel != "" && cfg.FastModel != cfg.StandardModel {
		fast, err = compileArkChain(ctx, cfg, cfg.FastModel)
		if err != nil {
			return nil, err
		}
	}

	return &arkClient{
		fast:     fast,
		standard: standard,
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

func compileArkChain(ctx context.Context, cfg config.AIConfig, modelName string) (compose.Runnable[map[string]any, *schema.Message], error) {
	chatModel, err := cfg.NewArkChatModel(ctx, modelName)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}
	return runnable, nil
}

func (c *arkClient) chain(tier Tier) compose.Runnable[map[string]any, *schema.Message] {
	if tier == TierFast {
		return c.fast
	}
	return c.standard
}

func (c *arkClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	response, err := c.chain(req.Tier).Invoke(ctx, chainInput(req))
	if err != nil {
		return "", fmt.Errorf("run AI chain: %w", err)
	}
	return response.Content, nil
}

func (c *arkClient) Stream(ctx context.Context, req Request) (Stream, error) {
	reader, err := c.chain(req.Tier).Stream(ctx, chainInput(req))
	if err != nil {
		return nil, fmt.Errorf("stream AI chain output: %w", err)
	}
	return &arkStream{reader: reader}, nil
}

func chainInput(req Request) map[string]any {
	return map[string]any{
		"system": req.System,
		"query":  req.Prompt,
	}
}

type arkStream struct {
	reader *schema.StreamReader[*schema.Message]
}

func (s *arkStream) Recv() (string, error) {
	for {
		chunk, err := s.reader.Recv()
		if err != nil {
			if err == io.EOF {
				return "", io.EOF
			}
			return "", err
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		return chunk.Content, nil
	}
}

func (s *arkStream) Close() {
	s.reader.Close()
}
