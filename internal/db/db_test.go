package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-guide/internal/types"
)

func TestAssessment_QA(t *testing.T) {
	a := Assessment{
		Profile: types.Profile{Name: "Asha", NoExperience: true},
		AIAnswers: []types.AIAnswer{
			{Question: "Preferred pace?", Answer: "Fast"},
			{Question: "Skipped?", Answer: ""},
			{Question: "Team size?", Answer: "Small", Category: "work_style"},
		},
	}

	qa := a.QA()

	require.Len(t, qa, 4)
	assert.Equal(t, "What is your name?", qa[0].Question)
	assert.Equal(t, "Do you have work experience?", qa[1].Question)
	assert.Equal(t, types.QuestionAnswer{Question: "Preferred pace?", Answer: "Fast", Category: types.DefaultAnswerCategory}, qa[2])
	assert.Equal(t, "work_style", qa[3].Category)
}

func TestUser_ToAPI(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.ToAPI())

	u := &User{ID: 3, UID: "sub-1", Email: "a@b.c"}
	assert.Equal(t, &types.User{ID: 3, UID: "sub-1", Email: "a@b.c"}, u.ToAPI())
}

func TestJSONBHelpers(t *testing.T) {
	data, err := marshalJSONB(nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = marshalJSONB([]types.AIAnswer{{Question: "Q", Answer: "A"}})
	require.NoError(t, err)

	var answers []types.AIAnswer
	require.NoError(t, unmarshalJSONB(data, &answers))
	assert.Equal(t, []types.AIAnswer{{Question: "Q", Answer: "A"}}, answers)

	var untouched []types.AIAnswer
	require.NoError(t, unmarshalJSONB(nil, &untouched))
	assert.Nil(t, untouched)
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"users", "assessments", "career_options"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestNonNilStrings(t *testing.T) {
	assert.Equal(t, []string{}, nonNilStrings(nil))
	assert.Equal(t, []string{"a"}, nonNilStrings([]string{"a"}))
}

func TestWithRollback(t *testing.T) {
	errInsert := errors.New("insert failed")
	errConn := errors.New("conn reset")

	assert.NoError(t, withRollback(nil, nil))
	assert.NoError(t, withRollback(nil, pgx.ErrTxClosed), "rollback after commit")
	assert.Same(t, errInsert, withRollback(errInsert, pgx.ErrTxClosed))

	err := withRollback(nil, errConn)
	require.Error(t, err)
	assert.ErrorIs(t, err, errConn)
	assert.Contains(t, err.Error(), "failed to roll back career options")

	err = withRollback(errInsert, errConn)
	assert.ErrorIs(t, err, errInsert)
	assert.ErrorIs(t, err, errConn)
}
