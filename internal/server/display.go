package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/career-guide/internal/types"
)

// CareerOptionView is a stored career option with display fields.
type CareerOptionView struct {
	types.CareerOption
	FormattedSalary       string   `json:"formatted_salary"`
	FormattedGrowthRate   string   `json:"formatted_growth_rate"`
	SkillsDisplay         []string `json:"skills_display"`
	AdditionalSkillsCount int      `json:"additional_skills_count"`
}

// displayedSkills is how many required skills are shown before "+N more".
const displayedSkills = 4

// NewCareerOptionView formats o for display.
func NewCareerOptionView(o types.CareerOption) CareerOptionView {
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	shown := skills
	if len(shown) > displayedSkills {
		shown = shown[:displayedSkills]
	}
	o.RequiredSkills = skills
	return CareerOptionView{
		CareerOption:          o,
		FormattedSalary:       FormatSalary(o.SalaryRangeMin, o.SalaryRangeMax, o.Currency),
		FormattedGrowthRate:   FormatGrowthRate(o.GrowthRate),
		SkillsDisplay:         shown,
		AdditionalSkillsCount: len(skills) - len(shown),
	}
}

// FormatSalary renders a range with Indian numbering units, e.g. "6.0L - 12.0L INR".
func FormatSalary(minSalary, maxSalary float64, currency string) string {
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return fmt.Sprintf("%s - %s %s", formatAmount(minSalary), formatAmount(maxSalary), currency)
}

func formatAmount(n float64) string {
	switch {
	case n >= 1e7:
		return fmt.Sprintf("%.1fCr", math.Round(n/1e6)/10)
	case n >= 1e5:
		return fmt.Sprintf("%.1fL", math.Round(n/1e4)/10)
	case n >= 1e3:
		return fmt.Sprintf("%.0fK", math.Round(n/1e3))
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// FormatGrowthRate renders a percentage, e.g. "15% growth".
func FormatGrowthRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "% growth"
}

// DecodeCareerTitle turns a URL slug back into a title: "-" becomes a
// space, "_" becomes "/", and each word starts upper case.
// "ui_ux-designer" decodes to "Ui/Ux Designer".
func DecodeCareerTitle(slug string) string {
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	slug = strings.NewReplacer("-", " ", "_", "/").Replace(slug)

	out := []rune(slug)
	prevWord := false
	for i, r := range out {
		word := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
		if word && !prevWord {
			out[i] = unicode.ToUpper(r)
		}
		prevWord = word
	}
	return strings.TrimSpace(string(out))
}

// Display defaults for roadmap fields the model may omit.
const (
	DefaultStepDuration      = "2-4 weeks"
	DefaultEstimatedTimeline = "18-24 months"
	DefaultDifficultyLevel   = "Intermediate"
)

// RoadmapView is the roadmap as the client renders it.
type RoadmapView struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Steps             []RoadmapStepView `json:"steps"`
	EstimatedTimeline string            `json:"estimated_timeline"`
	DifficultyLevel   string            `json:"difficulty_level"`
}

// RoadmapStepView is one roadmap step with a resource link and icon.
type RoadmapStepView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Icon        string   `json:"icon"`
	Completed   bool     `json:"completed"`
	SubSteps    []string `json:"sub_steps"`
	Duration    string   `json:"duration"`
	KeyOutcomes []string `json:"key_outcomes"`
}

// NewRoadmapView fills display defaults and attaches a learning resource
// and icon to each step.
func NewRoadmapView(rm types.Roadmap) RoadmapView {
	steps := make([]RoadmapStepView, 0, len(rm.Steps))
	for i, st := range rm.Steps {
		v := RoadmapStepView{
			ID:          fmt.Sprintf("step_%d", i+1),
			Name:        st.Step,
			Description: st.Description,
			Link:        StepLink(st.Step),
			Icon:        StepIcon(st.Step),
			SubSteps:    st.SubSteps,
			Duration:    st.Duration,
			KeyOutcomes: st.KeyOutcomes,
		}
		if v.SubSteps == nil {
			v.SubSteps = []string{}
		}
		if v.KeyOutcomes == nil {
			v.KeyOutcomes = []string{}
		}
		if v.Duration == "" {
			v.Duration = DefaultStepDuration
		}
		steps = append(steps, v)
	}

	view := RoadmapView{
		Name:              rm.Career,
		Description:       fmt.Sprintf("Personalized roadmap for %s career path", rm.Career),
		Steps:             steps,
		EstimatedTimeline: rm.EstimatedTimeline,
		DifficultyLevel:   rm.DifficultyLevel,
	}
	if view.EstimatedTimeline == "" {
		view.EstimatedTimeline = DefaultEstimatedTimeline
	}
	if view.DifficultyLevel == "" {
		view.DifficultyLevel = DefaultDifficultyLevel
	}
	return view
}

type stepResource struct {
	keywords []string
	link     string
	icon     string
}

// stepResources is checked in order; the first keyword hit wins.
var stepResources = []stepResource{
	{keywords: []string{"foundation", "basic"}, link: "https://www.coursera.org/", icon: "🏗️"},
	{keywords: []string{"skill", "learn"}, link: "https://www.udemy.com/", icon: "📚"},
	{keywords: []string{"project", "practice"}, link: "https://github.com/", icon: "💻"},
	{keywords: []string{"network", "connect"}, link: "https://www.linkedin.com/", icon: "🤝"},
	{keywords: []string{"certification", "certificate"}, link: "https://www.edx.org/", icon: "🏆"},
	{keywords: []string{"job", "apply"}, link: "https://www.naukri.com/", icon: "💼"},
	{keywords: []string{"experience", "internship"}, icon: "🎯"},
}

const defaultStepIcon = "📋"

func matchResource(stepName string) *stepResource {
	lower := strings.ToLower(stepName)
	for i := range stepResources {
		for _, kw := range stepResources[i].keywords {
			if strings.Contains(lower, kw) {
				return &stepResources[i]
			}
		}
	}
	return nil
}

// StepLink returns a learning resource for the step, or a web search for
// its name when no keyword matches.
func StepLink(stepName string) string {
	if res := matchResource(stepName); res != nil && res.link != "" {
		return res.link
	}
	return "https://www.google.com/search?q=" + strings.ReplaceAll(url.QueryEscape(stepName), "+", "%20")
}

// StepIcon returns an emoji for the step.
func StepIcon(stepName string) string {
	if res := matchResource(stepName); res != nil {
		return res.icon
	}
	return defaultStepIcon
}
