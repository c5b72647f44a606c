// Package types provides type definitions for structured data used throughout the career-guide system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// QuestionAnswer is one fact elicited from the user, either from the static
// questionnaire or from a previously generated follow-up question.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// FilterAnswered drops pairs whose answer is blank.
func FilterAnswered(qa []QuestionAnswer) []QuestionAnswer {
	out := make([]QuestionAnswer, 0, len(qa))
	for _, pair := range qa {
		if strings.TrimSpace(pair.Answer) == "" {
			continue
		}
		out = append(out, pair)
	}
	return out
}

// Profile is the static multi-step questionnaire submitted by the user.
type Profile struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	Age              int    `json:"age" validate:"omitempty,gte=10,lte=100"`
	HighschoolName   string `json:"highschool_name,omitempty" validate:"max=200"`
	HighschoolStream string `json:"highschool_stream,omitempty" validate:"max=100"`
	College          string `json:"college,omitempty" validate:"max=200"`
	CourseType       string `json:"course_type,omitempty" validate:"max=100"`
	Course           string `json:"course,omitempty" validate:"max=200"`
	Specialisation   string `json:"specialisation,omitempty" validate:"max=200"`
	NoExperience     bool   `json:"no_experience"`
	JobTitle         string `json:"job_title,omitempty" validate:"max=200"`
	CompanyName      string `json:"company_name,omitempty" validate:"max=200"`
	Duration         string `json:"duration,omitempty" validate:"max=100"`
	Skills           string `json:"skills,omitempty" validate:"max=2000"`
	Interests        string `json:"interests,omitempty" validate:"max=2000"`
	PreferredWorkEnv string `json:"preferred_work_env,omitempty" validate:"max=200"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// ToQA renders the questionnaire as question/answer pairs for prompting.
// Unanswered fields are dropped.
func (p *Profile) ToQA() []QuestionAnswer {
	age := ""
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}
	hasExperience := "Yes"
	if p.NoExperience {
		hasExperience = "No"
	}

	return FilterAnswered([]QuestionAnswer{
		{Question: "What is your name?", Answer: p.Name, Category: "personal"},
		{Question: "What is your age?", Answer: age, Category: "personal"},
		{Question: "What high school did you attend?", Answer: p.HighschoolName, Category: "education"},
		{Question: "What was your high school stream?", Answer: p.HighschoolStream, Category: "education"},
		{Question: "What college did you attend?", Answer: p.College, Category: "education"},
		{Question: "What type of course did you pursue?", Answer: p.CourseType, Category: "education"},
		{Question: "What was your course/degree?", Answer: p.Course, Category: "education"},
		{Question: "What was your specialization?", Answer: p.Specialisation, Category: "education"},
		{Question: "Do you have work experience?", Answer: hasExperience, Category: "experience"},
		{Question: "What is your job title?", Answer: p.JobTitle, Category: "experience"},
		{Question: "What company do you work for?", Answer: p.CompanyName, Category: "experience"},
		{Question: "How long have you been working?", Answer: p.Duration, Category: "experience"},
		{Question: "What are your key skills?", Answer: p.Skills, Category: "skills"},
		{Question: "What are your interests?", Answer: p.Interests, Category: "interests"},
		{Question: "What is your preferred work environment?", Answer: p.PreferredWorkEnv, Category: "preferences"},
	})
}

// AIAnswer is the user's answer to one generated follow-up question.
type AIAnswer struct {
	QuestionID string `json:"question_id,omitempty"`
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`
}

// DefaultAnswerCategory is used for follow-up answers that arrive without a category.
const DefaultAnswerCategory = "ai_generated"

// AnswersToQA converts follow-up answers into question/answer pairs.
func AnswersToQA(answers []AIAnswer) []QuestionAnswer {
	qa := make([]QuestionAnswer, 0, len(answers))
	for _, a := range answers {
		category := a.Category
		if category == "" {
			category = DefaultAnswerCategory
		}
		qa = append(qa, QuestionAnswer{Question: a.Question, Answer: a.Answer, Category: category})
	}
	return qa
}

// AIAnswersRequest is the body of the follow-up answers submission.
type AIAnswersRequest struct {
	RecommendationID int64      `json:"recommendationId" validate:"required,gt=0"`
	AIAnswers        []AIAnswer `json:"ai_answers" validate:"required,min=1,dive"`
}

// Validate validates the AIAnswersRequest using the validator.
func (r *AIAnswersRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
