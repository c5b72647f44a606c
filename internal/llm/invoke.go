package llm

import "context"

// Invoke sends one prompt for task and returns the raw model text.
// Any provider failure, including a context deadline, comes back as a
// *GenerationError. Invoke never retries.
func Invoke(ctx context.Context, client Client, cfg *Config, task Task, prompt string) (string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	raw, err := client.GenerateJSON(ctx, prompt, cfg.TierFor(task))
	if err != nil {
		return "", &GenerationError{Task: task, Cause: err}
	}
	return raw, nil
}
