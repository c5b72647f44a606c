package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-guide/internal/types"
)

const assessmentColumns = `id, user_id, name, age, highschool_name, highschool_stream, college,
	course_type, course, specialisation, no_experience, job_title, company_name, duration,
	skills, interests, preferred_work_env, ai_questions, ai_answers, final_recommendations,
	created_at, updated_at`

// CreateAssessment stores a submitted questionnaire for userID.
func (db *DB) CreateAssessment(ctx context.Context, userID int64, p *types.Profile) (*Assessment, error) {
	var age *int
	if p.Age > 0 {
		age = &p.Age
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO assessments (user_id, name, age, highschool_name, highschool_stream, college,
			course_type, course, specialisation, no_experience, job_title, company_name, duration,
			skills, interests, preferred_work_env)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+assessmentColumns,
		userID, p.Name, age, p.HighschoolName, p.HighschoolStream, p.College,
		p.CourseType, p.Course, p.Specialisation, p.NoExperience, p.JobTitle, p.CompanyName, p.Duration,
		p.Skills, p.Interests, p.PreferredWorkEnv,
	)
	a, err := scanAssessment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return a, nil
}

// GetAssessment returns an assessment by id, or nil if it does not exist.
func (db *DB) GetAssessment(ctx context.Context, id int64) (*Assessment, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, id)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment %d: %w", id, err)
	}
	return a, nil
}

// ListAssessments returns userID's assessments, newest first.
func (db *DB) ListAssessments(ctx context.Context, userID int64) ([]Assessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return out, nil
}

// SaveGeneratedQuestions attaches the follow-up questions to an assessment.
func (db *DB) SaveGeneratedQuestions(ctx context.Context, assessmentID int64, questions []types.GeneratedQuestion) error {
	return db.updateJSONB(ctx, assessmentID, "ai_questions", questions)
}

// SaveAIAnswers attaches the follow-up answers to an assessment.
func (db *DB) SaveAIAnswers(ctx context.Context, assessmentID int64, answers []types.AIAnswer) error {
	return db.updateJSONB(ctx, assessmentID, "ai_answers", answers)
}

// SaveFinalRecommendations stores the recommendation set verbatim.
func (db *DB) SaveFinalRecommendations(ctx context.Context, assessmentID int64, set types.RecommendationSet) error {
	return db.updateJSONB(ctx, assessmentID, "final_recommendations", set)
}

// updateJSONB overwrites one JSONB column. column is always a constant.
func (db *DB) updateJSONB(ctx context.Context, assessmentID int64, column string, value any) error {
	data, err := marshalJSONB(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", column, err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE assessments SET `+column+` = $1, updated_at = NOW() WHERE id = $2`,
		data, assessmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", column, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("assessment %d: %w", assessmentID, ErrNotFound)
	}
	return nil
}

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var (
		a                                      Assessment
		age                                    *int32
		questionsRaw, answersRaw, finalRecsRaw []byte
	)
	p := &a.Profile
	err := row.Scan(&a.ID, &a.UserID, &p.Name, &age, &p.HighschoolName, &p.HighschoolStream, &p.College,
		&p.CourseType, &p.Course, &p.Specialisation, &p.NoExperience, &p.JobTitle, &p.CompanyName, &p.Duration,
		&p.Skills, &p.Interests, &p.PreferredWorkEnv, &questionsRaw, &answersRaw, &finalRecsRaw,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if age != nil {
		p.Age = int(*age)
	}
	if err := unmarshalJSONB(questionsRaw, &a.AIQuestions); err != nil {
		return nil, fmt.Errorf("failed to decode ai_questions: %w", err)
	}
	if err := unmarshalJSONB(answersRaw, &a.AIAnswers); err != nil {
		return nil, fmt.Errorf("failed to decode ai_answers: %w", err)
	}
	if err := unmarshalJSONB(finalRecsRaw, &a.FinalRecommendations); err != nil {
		return nil, fmt.Errorf("failed to decode final_recommendations: %w", err)
	}
	return &a, nil
}
