//nolint:revive // types is a standard Go package name pattern
package types

// RoadmapStep is one stage of a career roadmap.
type RoadmapStep struct {
	Step        string   `json:"step" yaml:"step"`
	Description string   `json:"description" yaml:"description"`
	Duration    string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	KeyOutcomes []string `json:"key_outcomes,omitempty" yaml:"key_outcomes,omitempty"`
	SubSteps    []string `json:"sub_steps,omitempty" yaml:"sub_steps,omitempty"`
}

// Roadmap is an ordered plan toward a target career.
type Roadmap struct {
	Career            string        `json:"career"`
	EstimatedTimeline string        `json:"estimated_timeline,omitempty"`
	DifficultyLevel   string        `json:"difficulty_level,omitempty"`
	Steps             []RoadmapStep `json:"roadmap"`
	Fallback          bool          `json:"-"`
}
