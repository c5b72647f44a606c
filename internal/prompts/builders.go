package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/career-guide/internal/types"
)

const (
	keyFollowUp        = "follow-up-questions"
	keyRecommendations = "career-recommendations"
	keyOptions         = "career-options"
	keyRoadmap         = "career-roadmap"
)

// DefaultQuestionCount is the number of follow-up questions requested when
// the caller does not ask for a specific count.
const DefaultQuestionCount = 5

// QuestionCategories are the categories a follow-up question may belong to.
var QuestionCategories = []string{
	"career_goals", "work_style", "values", "interests", "skills", "personality", "growth",
}

// SalaryGuidance is the annual INR salary band per experience level given to
// the model when it proposes career options.
var SalaryGuidance = []string{
	"Fresh graduate: ₹3-8 LPA",
	"1-3 years experience: ₹6-15 LPA",
	"3-5 years experience: ₹12-25 LPA",
	"5+ years experience: ₹20-50+ LPA",
}

const notSpecified = "Not specified"

// FollowUpQuestions renders the prompt asking for count follow-up questions.
// A non-positive count uses DefaultQuestionCount.
func FollowUpQuestions(qa []types.QuestionAnswer, count int) string {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	qTypes := make([]string, 0, len(types.QuestionTypes))
	for _, t := range types.QuestionTypes {
		qTypes = append(qTypes, string(t))
	}

	return render(keyFollowUp, map[string]string{
		"Count":         strconv.Itoa(count),
		"Context":       FormatQA(qa, true),
		"QuestionTypes": strings.Join(qTypes, ", "),
		"Categories":    strings.Join(QuestionCategories, ", "),
	})
}

// CareerRecommendations renders the prompt for the recommendation set.
func CareerRecommendations(qa []types.QuestionAnswer) string {
	return render(keyRecommendations, map[string]string{
		"Context": FormatQA(qa, false),
	})
}

// CareerOptions renders the prompt for storable career options.
func CareerOptions(qa []types.QuestionAnswer) string {
	return render(keyOptions, map[string]string{
		"Context":        FormatQA(qa, false),
		"SalaryGuidance": bulletList(SalaryGuidance),
	})
}

// CareerRoadmap renders the roadmap prompt for title. Supplemental answers,
// when present, are listed as additional insights.
func CareerRoadmap(title string, profile types.Profile, supplemental []types.QuestionAnswer) string {
	insights := ""
	if answered := types.FilterAnswered(supplemental); len(answered) > 0 {
		insights = "\nAdditional Assessment Insights:\n" + FormatQA(answered, false) + "\n"
	}

	return render(keyRoadmap, map[string]string{
		"CareerTitle": title,
		"Profile":     FormatProfile(profile),
		"Insights":    insights,
	})
}

// FormatQA enumerates pairs as "{i}. Q: {question}\n   A: {answer}".
// With categories set, each pair gets a Category line, "general" when blank.
func FormatQA(qa []types.QuestionAnswer, categories bool) string {
	var sb strings.Builder
	for i, pair := range qa {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s", i+1, pair.Question, pair.Answer)
		if categories {
			category := pair.Category
			if category == "" {
				category = "general"
			}
			fmt.Fprintf(&sb, "\n   Category: %s", category)
		}
	}
	return sb.String()
}

// FormatProfile renders the questionnaire as the roadmap's profile block.
func FormatProfile(p types.Profile) string {
	age := notSpecified
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}

	experience := "No experience"
	if !p.NoExperience && p.JobTitle != "" {
		experience = p.JobTitle
		if p.CompanyName != "" {
			experience += " at " + p.CompanyName
		}
		if p.Duration != "" {
			experience += " (" + p.Duration + ")"
		}
	}

	lines := []string{
		"Name: " + orNotSpecified(p.Name),
		"Age: " + age,
		"Education: " + withDetail(p.HighschoolName, p.HighschoolStream),
		"College: " + orNotSpecified(p.College),
		"Course: " + withDetail(p.Course, p.Specialisation),
		"Experience: " + experience,
		"Skills: " + orNotSpecified(p.Skills),
		"Interests: " + orNotSpecified(p.Interests),
		"Work Environment: " + orNotSpecified(p.PreferredWorkEnv),
	}
	return bulletList(lines)
}

func withDetail(main, detail string) string {
	if strings.TrimSpace(main) == "" {
		return notSpecified
	}
	if strings.TrimSpace(detail) == "" {
		return main
	}
	return main + " (" + detail + ")"
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func bulletList(items []string) string {
	return "- " + strings.Join(items, "\n- ")
}
