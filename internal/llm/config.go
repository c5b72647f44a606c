// Package llm wraps the generative-model provider and turns its untrusted
// text output into parsed JSON values.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short structured output such as follow-up questions
	TierLite ModelTier = "lite"
	// TierStandard is for recommendation and option generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long multi-step plans
	TierAdvanced ModelTier = "advanced"
)

// Task names one of the generation tasks run against the model.
type Task string

// Generation tasks.
const (
	TaskFollowUpQuestions     Task = "follow_up_questions"
	TaskCareerRecommendations Task = "career_recommendations"
	TaskCareerOptions         Task = "career_options"
	TaskCareerRoadmap         Task = "career_roadmap"
)

// Tasks lists every generation task.
var Tasks = []Task{TaskFollowUpQuestions, TaskCareerRecommendations, TaskCareerOptions, TaskCareerRoadmap}

// Config holds the model names used per tier and the tier used per task.
type Config struct {
	Models    map[ModelTier]string
	TaskTiers map[Task]ModelTier
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		TaskTiers: map[Task]ModelTier{
			TaskFollowUpQuestions:     TierStandard,
			TaskCareerRecommendations: TierStandard,
			TaskCareerOptions:         TierStandard,
			TaskCareerRoadmap:         TierStandard,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierLite]; ok && model != "" {
		return model
	}
	return ""
}

// TierFor returns the tier configured for a task, TierStandard when unset.
func (c *Config) TierFor(task Task) ModelTier {
	if tier, ok := c.TaskTiers[task]; ok {
		return tier
	}
	return TierStandard
}

// WithModel returns a new Config with a specific model for a tier.
// An empty model leaves the tier unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	if model != "" {
		newConfig.Models[tier] = model
	}
	return newConfig
}

// WithTaskTier returns a new Config that runs task on tier.
func (c *Config) WithTaskTier(task Task, tier ModelTier) *Config {
	newConfig := c.clone()
	newConfig.TaskTiers[task] = tier
	return newConfig
}

func (c *Config) clone() *Config {
	out := &Config{
		Models:    make(map[ModelTier]string, len(c.Models)),
		TaskTiers: make(map[Task]ModelTier, len(c.TaskTiers)),
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	for k, v := range c.TaskTiers {
		out.TaskTiers[k] = v
	}
	return out
}
