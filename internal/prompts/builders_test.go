package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-guide/internal/types"
)

var sampleQA = []types.QuestionAnswer{
	{Question: "What is your name?", Answer: "Asha", Category: "personal"},
	{Question: "What are your key skills?", Answer: "Go, SQL"},
}

func TestFormatQA(t *testing.T) {
	assert.Equal(t,
		"1. Q: What is your name?\n   A: Asha\n2. Q: What are your key skills?\n   A: Go, SQL",
		FormatQA(sampleQA, false))

	assert.Equal(t,
		"1. Q: What is your name?\n   A: Asha\n   Category: personal\n2. Q: What are your key skills?\n   A: Go, SQL\n   Category: general",
		FormatQA(sampleQA, true))

	assert.Equal(t, "", FormatQA(nil, true))
}

func TestFollowUpQuestions(t *testing.T) {
	prompt := FollowUpQuestions(sampleQA, 3)

	assert.Contains(t, prompt, "generate 3 personalized follow-up questions")
	assert.Contains(t, prompt, "1. Q: What is your name?\n   A: Asha\n   Category: personal")
	assert.Contains(t, prompt, "text, multiple_choice, checkbox, number, textarea")
	assert.Contains(t, prompt, strings.Join(QuestionCategories, ", "))
	assert.Contains(t, prompt, "Return ONLY a single valid JSON value")
	assert.NotContains(t, prompt, "{{.")
}

func TestFollowUpQuestions_DefaultCount(t *testing.T) {
	assert.Contains(t, FollowUpQuestions(sampleQA, 0), "generate 5 personalized")
}

func TestCareerRecommendations(t *testing.T) {
	prompt := CareerRecommendations(sampleQA)

	assert.Contains(t, prompt, "2. Q: What are your key skills?\n   A: Go, SQL")
	assert.NotContains(t, prompt, "Category:")
	assert.Contains(t, prompt, `"recommendations"`)
	assert.Contains(t, prompt, `"market_insights"`)
	assert.NotContains(t, prompt, "{{.")
}

func TestCareerOptions(t *testing.T) {
	prompt := CareerOptions(sampleQA)

	for _, band := range SalaryGuidance {
		assert.Contains(t, prompt, band)
	}
	assert.Contains(t, prompt, `"currency": "INR"`)
	assert.Contains(t, prompt, `"salary_range_min"`)
	assert.Contains(t, prompt, `"growth_rate"`)
	assert.NotContains(t, prompt, "{{.")
}

func TestCareerRoadmap(t *testing.T) {
	profile := types.Profile{
		Name:             "Asha",
		Age:              24,
		HighschoolName:   "DPS",
		HighschoolStream: "Science",
		Course:           "B.Tech",
		Specialisation:   "CSE",
		JobTitle:         "Analyst",
		CompanyName:      "Acme",
		Duration:         "1 year",
	}

	t.Run("with insights", func(t *testing.T) {
		prompt := CareerRoadmap("Data Scientist", profile, []types.QuestionAnswer{
			{Question: "Preferred pace?", Answer: "Fast"},
			{Question: "Blank?", Answer: " "},
		})

		assert.Contains(t, prompt, "to become a Data Scientist")
		assert.Contains(t, prompt, "- Education: DPS (Science)")
		assert.Contains(t, prompt, "- College: Not specified")
		assert.Contains(t, prompt, "- Course: B.Tech (CSE)")
		assert.Contains(t, prompt, "- Experience: Analyst at Acme (1 year)")
		assert.Contains(t, prompt, "Additional Assessment Insights:\n1. Q: Preferred pace?\n   A: Fast")
		assert.NotContains(t, prompt, "Blank?")
		assert.Contains(t, prompt, `"career": "Data Scientist"`)
		assert.NotContains(t, prompt, "{{.")
	})

	t.Run("without insights", func(t *testing.T) {
		prompt := CareerRoadmap("Chef", types.Profile{Name: "Ravi", NoExperience: true}, nil)

		assert.NotContains(t, prompt, "Additional Assessment Insights")
		assert.Contains(t, prompt, "- Experience: No experience")
		assert.Contains(t, prompt, "- Age: Not specified")
	})

	t.Run("stable output", func(t *testing.T) {
		assert.Equal(t, CareerRoadmap("Chef", profile, sampleQA), CareerRoadmap("Chef", profile, sampleQA))
	})
}
