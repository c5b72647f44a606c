package guidance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/career-guide/internal/llm"
	"github.com/jonathan/career-guide/internal/logger"
	"github.com/jonathan/career-guide/internal/schemas"
	"github.com/jonathan/career-guide/internal/types"
)

var defaultChoiceOptions = []string{"Yes", "No"}

// ValidateQuestions narrows parsed model output into follow-up questions.
// Entries missing text, type or category are dropped and logged. Only a
// non-array top-level value is an error.
func ValidateQuestions(raw any, log *logger.Logger) ([]types.GeneratedQuestion, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, rejected(llm.TaskFollowUpQuestions, "expected an array, got %s", kindOf(raw))
	}

	out := make([]types.GeneratedQuestion, 0, len(entries))
	for i, entry := range entries {
		if err := schemas.ValidateValue(schemas.FollowUpQuestion, entry); err != nil {
			log.Warn("dropping malformed follow-up question", "index", i, "error", err)
			continue
		}
		m := entry.(map[string]any)
		text, category := stringField(m, "question_text"), stringField(m, "category")
		if text == "" || category == "" {
			log.Warn("dropping blank follow-up question", "index", i)
			continue
		}

		qType := types.QuestionType(stringField(m, "question_type"))
		if !qType.IsValid() {
			qType = types.QuestionText
		}

		options := stringList(m["options"])
		if qType == types.QuestionMultipleChoice && len(options) == 0 {
			options = append([]string(nil), defaultChoiceOptions...)
		}

		required := true
		if b, ok := m["is_required"].(bool); ok && !b {
			required = false
		}

		out = append(out, types.GeneratedQuestion{
			QuestionText: text,
			QuestionType: qType,
			Category:     category,
			Options:      options,
			IsRequired:   required,
		})
	}
	return out, nil
}

// ValidateRecommendations accepts any JSON object and returns it verbatim.
func ValidateRecommendations(raw any) (types.RecommendationSet, error) {
	if err := schemas.ValidateValue(schemas.RecommendationSet, raw); err != nil {
		return nil, rejected(llm.TaskCareerRecommendations, "expected an object, got %s", kindOf(raw))
	}
	return types.RecommendationSet(raw.(map[string]any)), nil
}

// ValidateCareerOptions narrows parsed model output into career options.
// Entries that are not objects or have no name are dropped and logged.
// Applying it to its own output returns the same batch.
func ValidateCareerOptions(raw any, log *logger.Logger) ([]types.CareerOption, error) {
	switch v := raw.(type) {
	case []types.CareerOption:
		out := make([]types.CareerOption, 0, len(v))
		for _, opt := range v {
			if strings.TrimSpace(opt.Name) == "" {
				continue
			}
			out = append(out, normalizeOption(opt))
		}
		return out, nil
	case []any:
		out := make([]types.CareerOption, 0, len(v))
		for i, entry := range v {
			if err := schemas.ValidateValue(schemas.CareerOption, entry); err != nil {
				log.Warn("dropping malformed career option", "index", i, "error", err)
				continue
			}
			m := entry.(map[string]any)
			name := stringField(m, "name")
			if name == "" {
				log.Warn("dropping unnamed career option", "index", i)
				continue
			}
			out = append(out, normalizeOption(types.CareerOption{
				Name:           name,
				Description:    stringField(m, "description"),
				SalaryRangeMin: numberField(m, "salary_range_min"),
				SalaryRangeMax: numberField(m, "salary_range_max"),
				Currency:       stringField(m, "currency"),
				RequiredSkills: stringList(m["required_skills"]),
				GrowthRate:     numberField(m, "growth_rate"),
			}))
		}
		return out, nil
	default:
		return nil, rejected(llm.TaskCareerOptions, "expected an array, got %s", kindOf(raw))
	}
}

func normalizeOption(opt types.CareerOption) types.CareerOption {
	opt.Name = strings.TrimSpace(opt.Name)
	opt.Currency = strings.TrimSpace(opt.Currency)
	if opt.Currency == "" {
		opt.Currency = types.DefaultCurrency
	}
	if opt.RequiredSkills == nil {
		opt.RequiredSkills = []string{}
	}
	return opt
}

// ValidateRoadmap always returns a roadmap with at least one step. Output
// that is not an object, has no roadmap array, or has no step with both a
// title and a description is replaced by FallbackRoadmap(careerTitle).
func ValidateRoadmap(raw any, careerTitle string, log *logger.Logger) types.Roadmap {
	m, ok := raw.(map[string]any)
	if !ok {
		log.Warn("roadmap output is not an object, using fallback", "career", careerTitle, "kind", kindOf(raw))
		return FallbackRoadmap(careerTitle)
	}
	entries, ok := m["roadmap"].([]any)
	if !ok {
		log.Warn("roadmap output has no roadmap array, using fallback", "career", careerTitle)
		return FallbackRoadmap(careerTitle)
	}

	steps := make([]types.RoadmapStep, 0, len(entries))
	for i, entry := range entries {
		if err := schemas.ValidateValue(schemas.RoadmapStep, entry); err != nil {
			log.Warn("dropping malformed roadmap step", "index", i, "error", err)
			continue
		}
		s := entry.(map[string]any)
		title, description := stringField(s, "step"), stringField(s, "description")
		if title == "" || description == "" {
			log.Warn("dropping blank roadmap step", "index", i)
			continue
		}
		steps = append(steps, types.RoadmapStep{
			Step:        title,
			Description: description,
			Duration:    stringField(s, "duration"),
			KeyOutcomes: stringList(s["key_outcomes"]),
			SubSteps:    stringList(s["sub_steps"]),
		})
	}
	if len(steps) == 0 {
		log.Warn("roadmap output has no usable steps, using fallback", "career", careerTitle)
		return FallbackRoadmap(careerTitle)
	}

	career := stringField(m, "career")
	if career == "" {
		career = careerTitle
	}
	return types.Roadmap{
		Career:            career,
		EstimatedTimeline: stringField(m, "estimated_timeline"),
		DifficultyLevel:   stringField(m, "difficulty_level"),
		Steps:             steps,
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// numberField reads a JSON number or a numeric string such as "6,00,000"
// or "15%". Anything else is zero.
func numberField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		cleaned := strings.NewReplacer(",", "", "%", "", " ", "").Replace(v)
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// stringList reads an array of strings, skipping blanks and non-strings.
// A single comma separated string is split.
func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []string:
		return stringList(toAnySlice(t))
	case string:
		return stringList(toAnySlice(strings.Split(t, ",")))
	default:
		return nil
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
