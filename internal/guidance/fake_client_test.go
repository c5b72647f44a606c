package guidance

import (
	"context"
	"sync"

	"github.com/jonathan/career-guide/internal/llm"
)

type reply struct {
	text string
	err  error
}

// scriptedClient returns replies in order, repeating the last one.
type scriptedClient struct {
	mu      sync.Mutex
	replies []reply
	prompts []string
	tiers   []llm.ModelTier
}

func newScriptedClient(replies ...reply) *scriptedClient {
	return &scriptedClient{replies: replies}
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)
	c.tiers = append(c.tiers, tier)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	idx := len(c.prompts) - 1
	if idx >= len(c.replies) {
		idx = len(c.replies) - 1
	}
	return c.replies[idx].text, c.replies[idx].err
}

func (c *scriptedClient) GetModel(tier llm.ModelTier) string { return string(tier) }

func (c *scriptedClient) Close() error { return nil }

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}
