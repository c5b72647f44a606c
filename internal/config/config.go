// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/jonathan/career-guide/internal/llm"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	GeminiAPIKey        string `env:"GEMINI_API_KEY"`
	GeminiModelLite     string `env:"GEMINI_MODEL_LITE"`
	GeminiModelStandard string `env:"GEMINI_MODEL_STANDARD"`
	GeminiModelAdvanced string `env:"GEMINI_MODEL_ADVANCED"`
	// RoadmapModelTier selects the tier used for roadmaps: lite, standard or advanced.
	RoadmapModelTier string `env:"ROADMAP_MODEL_TIER" envDefault:"standard"`

	GenerationMaxRetries    int           `env:"GENERATION_MAX_RETRIES" envDefault:"1"`
	GenerationRetryInterval time.Duration `env:"GENERATION_RETRY_INTERVAL" envDefault:"2s"`
	FollowUpQuestionCount   int           `env:"FOLLOW_UP_QUESTION_COUNT" envDefault:"5"`

	LogMode  string `env:"LOG_MODE" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	JWT JWTConfig `envPrefix:"JWT_"`
}

// Load parses environment variables into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize validates ranges. Secrets required only by some commands are
// checked by those commands.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port)
	}
	if c.GenerationMaxRetries < 0 {
		return fmt.Errorf("GENERATION_MAX_RETRIES must be non-negative, got: %d", c.GenerationMaxRetries)
	}
	if c.FollowUpQuestionCount < 1 || c.FollowUpQuestionCount > 20 {
		return fmt.Errorf("FOLLOW_UP_QUESTION_COUNT must be between 1 and 20, got: %d", c.FollowUpQuestionCount)
	}
	if c.RateLimitPerMin < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be at least 1, got: %d", c.RateLimitPerMin)
	}
	switch llm.ModelTier(strings.ToLower(c.RoadmapModelTier)) {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
	default:
		return fmt.Errorf("ROADMAP_MODEL_TIER must be lite, standard or advanced, got: %q", c.RoadmapModelTier)
	}
	return nil
}

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// ModelConfig returns the default model table with any overrides applied.
func (c Config) ModelConfig() *llm.Config {
	return llm.DefaultConfig().
		WithModel(llm.TierLite, c.GeminiModelLite).
		WithModel(llm.TierStandard, c.GeminiModelStandard).
		WithModel(llm.TierAdvanced, c.GeminiModelAdvanced).
		WithTaskTier(llm.TaskCareerRoadmap, llm.ModelTier(strings.ToLower(c.RoadmapModelTier)))
}

// JWTConfig returns the validated token configuration.
func (c Config) JWTConfig() (*JWTConfig, error) {
	jwtCfg := c.JWT
	if err := jwtCfg.normalize(); err != nil {
		return nil, err
	}
	return &jwtCfg, nil
}

// ParseOrigins splits CORS_ALLOW_ORIGINS. Empty means any origin.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
