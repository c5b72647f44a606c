// Package guidance runs the four generation tasks: it builds the prompt,
// invokes the model, extracts JSON from the reply and validates it into
// typed results.
package guidance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/jonathan/career-guide/internal/llm"
	"github.com/jonathan/career-guide/internal/logger"
	"github.com/jonathan/career-guide/internal/observability"
	"github.com/jonathan/career-guide/internal/prompts"
	"github.com/jonathan/career-guide/internal/types"
)

// State is the terminal state of one generation call.
type State string

// Terminal states.
const (
	StateSuccess         State = "success"
	StateFallbackApplied State = "fallback_applied"
	StateFailed          State = "failed"
)

// Config tunes the Service.
type Config struct {
	Models        *llm.Config
	MaxRetries    int
	RetryInterval time.Duration
	QuestionCount int
}

// DefaultConfig returns one retry after two seconds and five follow-up questions.
func DefaultConfig() Config {
	return Config{
		Models:        llm.DefaultConfig(),
		MaxRetries:    1,
		RetryInterval: 2 * time.Second,
		QuestionCount: prompts.DefaultQuestionCount,
	}
}

// Service holds no per-request state and is safe for concurrent use.
type Service struct {
	client llm.Client
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
}

// NewService creates a Service around client.
func NewService(client llm.Client, cfg Config, log *logger.Logger) *Service {
	if cfg.Models == nil {
		cfg.Models = llm.DefaultConfig()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = prompts.DefaultQuestionCount
	}
	return &Service{client: client, cfg: cfg, log: log, now: time.Now}
}

// FollowUpQuestions asks for count questions (the configured default when
// count <= 0) and stamps each accepted question with an id.
func (s *Service) FollowUpQuestions(ctx context.Context, previous []types.QuestionAnswer, count int) ([]types.GeneratedQuestion, error) {
	const task = llm.TaskFollowUpQuestions
	start := time.Now()
	if count <= 0 {
		count = s.cfg.QuestionCount
	}

	value, err := s.generate(ctx, task, prompts.FollowUpQuestions(types.FilterAnswered(previous), count))
	if err != nil {
		return nil, s.fail(task, start, err)
	}
	questions, err := ValidateQuestions(value, s.log.With("task", task))
	if err != nil {
		return nil, s.fail(task, start, err)
	}

	stamp := s.now().UnixMilli()
	for i := range questions {
		questions[i].ID = fmt.Sprintf("ai_%d_%d", stamp, i)
	}
	s.record(task, StateSuccess, start, "questions", len(questions))
	return questions, nil
}

// CareerRecommendations returns the model's recommendation set for the
// cumulative answers.
func (s *Service) CareerRecommendations(ctx context.Context, answers []types.QuestionAnswer) (types.RecommendationSet, error) {
	const task = llm.TaskCareerRecommendations
	start := time.Now()

	value, err := s.generate(ctx, task, prompts.CareerRecommendations(types.FilterAnswered(answers)))
	if err != nil {
		return nil, s.fail(task, start, err)
	}
	set, err := ValidateRecommendations(value)
	if err != nil {
		return nil, s.fail(task, start, err)
	}
	s.record(task, StateSuccess, start)
	return set, nil
}

// CareerOptions returns a batch of options owned by ownerID, ready to replace
// the owner's stored batch.
func (s *Service) CareerOptions(ctx context.Context, answers []types.QuestionAnswer, ownerID int64) ([]types.CareerOption, error) {
	const task = llm.TaskCareerOptions
	start := time.Now()

	value, err := s.generate(ctx, task, prompts.CareerOptions(types.FilterAnswered(answers)))
	if err != nil {
		return nil, s.fail(task, start, err)
	}
	options, err := ValidateCareerOptions(value, s.log.With("task", task))
	if err != nil {
		return nil, s.fail(task, start, err)
	}

	now := s.now().UTC()
	for i := range options {
		options[i].ID = uuid.New()
		options[i].UserID = ownerID
		options[i].CreatedAt = now
		options[i].UpdatedAt = now
	}
	s.record(task, StateSuccess, start, "options", len(options))
	return options, nil
}

// CareerRoadmap never fails. Generation or extraction errors yield the
// fallback roadmap for title.
func (s *Service) CareerRoadmap(ctx context.Context, title string, profile types.Profile, supplemental []types.QuestionAnswer) types.Roadmap {
	const task = llm.TaskCareerRoadmap
	start := time.Now()

	value, err := s.generate(ctx, task, prompts.CareerRoadmap(title, profile, supplemental))
	if err != nil {
		s.log.Warn("roadmap generation failed, using fallback", "career", title, "error", err)
		s.record(task, StateFallbackApplied, start)
		return FallbackRoadmap(title)
	}

	roadmap := ValidateRoadmap(value, title, s.log.With("task", task))
	if roadmap.Fallback {
		s.record(task, StateFallbackApplied, start)
	} else {
		s.record(task, StateSuccess, start, "steps", len(roadmap.Steps))
	}
	return roadmap
}

// generate invokes the model, retrying only generation failures, and
// extracts a JSON value from the reply.
func (s *Service) generate(ctx context.Context, task llm.Task, prompt string) (any, error) {
	var raw string
	var lastErr error
	attempt := 0
	op := func() error {
		attempt++
		text, err := llm.Invoke(ctx, s.client, s.cfg.Models, task, prompt)
		if err != nil {
			lastErr = err
			return err
		}
		raw = text
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	if s.cfg.RetryInterval > 0 {
		expo.InitialInterval = s.cfg.RetryInterval
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(s.cfg.MaxRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		observability.GenerationRetriesTotal.WithLabelValues(string(task)).Inc()
		s.log.Warn("generation failed, retrying", "task", task, "attempt", attempt, "wait", wait, "error", err)
	}

	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			return nil, err
		}
		// context ended while waiting between attempts
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, &llm.GenerationError{Task: task, Cause: err}
	}

	ext, err := llm.Extract(raw)
	if err != nil {
		return nil, err
	}
	observability.ExtractionStrategyTotal.WithLabelValues(ext.Strategy).Inc()
	return ext.Value, nil
}

func (s *Service) fail(task llm.Task, start time.Time, err error) error {
	s.record(task, StateFailed, start, "error", err)
	return err
}

func (s *Service) record(task llm.Task, state State, start time.Time, keysAndValues ...any) {
	elapsed := time.Since(start)
	observability.GenerationOutcomesTotal.WithLabelValues(string(task), string(state)).Inc()
	observability.GenerationDuration.WithLabelValues(string(task)).Observe(elapsed.Seconds())

	kv := append([]any{"task", task, "state", state, "elapsed", elapsed}, keysAndValues...)
	if state == StateFailed {
		s.log.Error("generation finished", kv...)
		return
	}
	s.log.Info("generation finished", kv...)
}
