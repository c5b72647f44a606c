package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/guidance"
	"github.com/jonathan/career-guide/internal/llm"
	"github.com/jonathan/career-guide/internal/logger"
)

// newLLMClient is replaced in tests.
var newLLMClient = func(ctx context.Context, models *llm.Config, apiKey string) (llm.Client, error) {
	return llm.NewGeminiClient(ctx, models, apiKey)
}

// guidanceConfig maps environment configuration onto the generation service.
func guidanceConfig(cfg config.Config) guidance.Config {
	return guidance.Config{
		Models:        cfg.ModelConfig(),
		MaxRetries:    cfg.GenerationMaxRetries,
		RetryInterval: cfg.GenerationRetryInterval,
		QuestionCount: cfg.FollowUpQuestionCount,
	}
}

// newGuidance builds the model client and the generation service. The
// caller closes the returned client.
func newGuidance(ctx context.Context, cfg config.Config, log *logger.Logger) (*guidance.Service, llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	gcfg := guidanceConfig(cfg)
	client, err := newLLMClient(ctx, gcfg.Models, cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return guidance.NewService(client, gcfg, log), client, nil
}
