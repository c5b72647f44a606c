//go:build integration

package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-guide/internal/types"
)

// setupTestDB connects to DATABASE_URL and applies the schema.
// Skipped if DATABASE_URL is not set or connection fails.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.ApplySchema(ctx))
	t.Cleanup(db.Close)
	return db
}

func newTestUser(t *testing.T, db *DB) *User {
	t.Helper()
	uid := "test-" + uuid.NewString()
	u, err := db.UpsertUser(context.Background(), uid, uid+"@example.com")
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func optionBatch(label string, n int) []types.CareerOption {
	now := time.Now().UTC().Truncate(time.Microsecond)
	out := make([]types.CareerOption, n)
	for i := range out {
		out[i] = types.CareerOption{
			ID:             uuid.New(),
			Name:           label + "-" + string(rune('a'+i)),
			Description:    "desc",
			SalaryRangeMin: 300000,
			SalaryRangeMax: 900000,
			Currency:       "INR",
			RequiredSkills: []string{"Go"},
			GrowthRate:     12.5,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}
	return out
}

func TestIntegration_UpsertUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := newTestUser(t, db)

	again, err := db.UpsertUser(ctx, u.UID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "new@example.com", again.Email)

	found, err := db.GetUserBySubject(ctx, u.UID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "new@example.com", found.Email)

	missing, err := db.GetUserBySubject(ctx, "missing-"+uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_AssessmentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := newTestUser(t, db)

	profile := &types.Profile{Name: "Asha", Age: 22, College: "IIT", Skills: "Go"}
	a, err := db.CreateAssessment(ctx, u.ID, profile)
	require.NoError(t, err)
	assert.Equal(t, *profile, a.Profile)
	assert.Nil(t, a.AIQuestions)

	questions := []types.GeneratedQuestion{{ID: "ai_1_0", QuestionText: "Q", QuestionType: types.QuestionText, Category: "skills", IsRequired: true}}
	require.NoError(t, db.SaveGeneratedQuestions(ctx, a.ID, questions))
	answers := []types.AIAnswer{{QuestionID: "ai_1_0", Question: "Q", Answer: "A"}}
	require.NoError(t, db.SaveAIAnswers(ctx, a.ID, answers))
	recs := types.RecommendationSet{"user_profile_summary": "s", "recommendations": []any{}}
	require.NoError(t, db.SaveFinalRecommendations(ctx, a.ID, recs))

	got, err := db.GetAssessment(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, questions, got.AIQuestions)
	assert.Equal(t, answers, got.AIAnswers)
	assert.Equal(t, recs, got.FinalRecommendations)

	list, err := db.ListAssessments(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	missing, err := db.GetAssessment(ctx, -1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, db.SaveAIAnswers(ctx, -1, answers), ErrNotFound)
}

func TestIntegration_ReplaceCareerOptions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := newTestUser(t, db)

	first := optionBatch("first", 5)
	require.NoError(t, db.ReplaceCareerOptions(ctx, u.ID, first))
	second := optionBatch("second", 5)
	require.NoError(t, db.ReplaceCareerOptions(ctx, u.ID, second))

	stored, err := db.ListCareerOptions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stored, 5)
	for i, opt := range stored {
		assert.Equal(t, second[i].ID, opt.ID)
		assert.Equal(t, second[i].Name, opt.Name)
		assert.Equal(t, u.ID, opt.UserID)
		assert.Equal(t, []string{"Go"}, opt.RequiredSkills)
	}
}

func TestIntegration_ReplaceCareerOptions_ReadersNeverSeeMixedBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := newTestUser(t, db)
	require.NoError(t, db.ReplaceCareerOptions(ctx, u.ID, optionBatch("seed", 5)))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	mixed := make(chan []types.CareerOption, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			opts, err := db.ListCareerOptions(ctx, u.ID)
			if err != nil || len(opts) == 0 {
				continue
			}
			prefix := opts[0].Name[:len(opts[0].Name)-2]
			for _, o := range opts {
				if len(opts) != 5 || o.Name[:len(o.Name)-2] != prefix {
					select {
					case mixed <- opts:
					default:
					}
					return
				}
			}
		}
	}()

	for i := 0; i < 20; i++ {
		require.NoError(t, db.ReplaceCareerOptions(ctx, u.ID, optionBatch("batch"+string(rune('a'+i)), 5)))
	}
	close(stop)
	wg.Wait()

	select {
	case opts := <-mixed:
		t.Fatalf("reader observed a partial batch: %+v", opts)
	default:
	}
}
