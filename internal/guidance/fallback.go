package guidance

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/career-guide/internal/types"
)

//go:embed fallback_roadmap.yaml
var fallbackRoadmapYAML []byte

const careerPlaceholder = "{career}"

type fallbackPlan struct {
	Steps []types.RoadmapStep `yaml:"steps"`
}

var (
	fallbackOnce sync.Once
	fallback     fallbackPlan
	fallbackErr  error
)

func loadFallbackPlan() (fallbackPlan, error) {
	fallbackOnce.Do(func() {
		fallbackErr = yaml.Unmarshal(fallbackRoadmapYAML, &fallback)
		if fallbackErr == nil && len(fallback.Steps) == 0 {
			fallbackErr = fmt.Errorf("fallback roadmap has no steps")
		}
	})
	return fallback, fallbackErr
}

// FallbackRoadmap returns the static plan for careerTitle. The embedded data
// is checked by tests, so a decode failure here is a build defect.
func FallbackRoadmap(careerTitle string) types.Roadmap {
	plan, err := loadFallbackPlan()
	if err != nil {
		panic(fmt.Sprintf("fallback roadmap: %v", err))
	}

	steps := make([]types.RoadmapStep, len(plan.Steps))
	for i, s := range plan.Steps {
		steps[i] = types.RoadmapStep{
			Step:        strings.ReplaceAll(s.Step, careerPlaceholder, careerTitle),
			Description: strings.ReplaceAll(s.Description, careerPlaceholder, careerTitle),
			Duration:    s.Duration,
			KeyOutcomes: append([]string(nil), s.KeyOutcomes...),
		}
	}

	return types.Roadmap{Career: careerTitle, Steps: steps, Fallback: true}
}
