package db

import (
	"time"

	"github.com/jonathan/career-guide/internal/types"
)

// User is an authenticated identity known to the store
type User struct {
	ID        int64     `json:"id"`
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAPI converts the row to the API representation.
func (u *User) ToAPI() *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID,
		UID:       u.UID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Assessment is one questionnaire submission with the generated artifacts
// attached to it as the flow progresses.
type Assessment struct {
	ID                   int64                     `json:"id"`
	UserID               int64                     `json:"user_id"`
	Profile              types.Profile             `json:"profile"`
	AIQuestions          []types.GeneratedQuestion `json:"ai_questions,omitempty"`
	AIAnswers            []types.AIAnswer          `json:"ai_answers,omitempty"`
	FinalRecommendations types.RecommendationSet   `json:"final_recommendations,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
}

// QA returns the questionnaire answers followed by the follow-up answers.
func (a *Assessment) QA() []types.QuestionAnswer {
	qa := a.Profile.ToQA()
	return append(qa, types.FilterAnswered(types.AnswersToQA(a.AIAnswers))...)
}
