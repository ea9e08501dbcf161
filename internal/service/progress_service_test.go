package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionSolvedOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "hank")
	ctx := context.Background()
	q := &model.Question{BaseModel: model.BaseModel{ID: 7}, Title: "Two Sum", Difficulty: "easy", Points: 10}

	result, err := env.progress.QuestionSolved(ctx, u.ID, q)
	require.NoError(t, err)
	assert.False(t, result.AlreadySolved)
	assert.Equal(t, 10, result.Awarded)
	assert.Equal(t, 10, result.Coins)
	assert.Equal(t, 1, result.Activity.QuestionsSolved)
	assert.Equal(t, 10, result.Activity.CoinsEarned)
	assert.Equal(t, 1, result.Stats.QuestionsByDifficulty.Easy)

	again, err := env.progress.QuestionSolved(ctx, u.ID, q)
	require.NoError(t, err)
	assert.True(t, again.AlreadySolved)
	assert.Equal(t, 0, again.Awarded)
	assert.Equal(t, 10, again.Coins)

	user := env.reload(t, u.ID)
	assert.Equal(t, 1, user.Stats.TotalQuestionsSolved)
	assert.Equal(t, 1, user.Streak)
}

func TestInterviewCompletedAwardsFlooredCoins(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "iris")
	ctx := context.Background()

	result, err := env.progress.InterviewCompleted(ctx, u.ID, CompleteInterview{
		Questions:    []model.InterviewAnswer{{Question: "q", Answer: "a", Score: 4}},
		OverallScore: 3.7,
		Duration:     15,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Awarded)
	assert.Equal(t, 6, result.Coins)
	assert.Equal(t, model.InterviewMixed, result.Session.Type)
	assert.Equal(t, 1, result.Activity.InterviewsCompleted)
	assert.Equal(t, 6, result.Activity.CoinsEarned)
	assert.InDelta(t, 3.7, result.Stats.AverageInterviewScore, 1e-9)

	zero, err := env.progress.InterviewCompleted(ctx, u.ID, CompleteInterview{Type: "behavioral", OverallScore: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Awarded)
	assert.Equal(t, 6, zero.Coins)
	assert.Equal(t, 2, zero.Stats.InterviewsCompleted)

	sessions, err := env.store.Sessions.List(ctx, u.ID, repositorySessionsAll())
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestInterviewCompletedValidation(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "jack")
	ctx := context.Background()

	cases := []CompleteInterview{
		{OverallScore: 6},
		{OverallScore: 3, Duration: -1},
		{OverallScore: 3, Questions: []model.InterviewAnswer{{Score: 0}}},
	}
	for _, in := range cases {
		_, err := env.progress.InterviewCompleted(ctx, u.ID, in)
		assert.ErrorIs(t, err, util.ErrValidation)
	}
	_, err := env.progress.InterviewCompleted(ctx, 999, CompleteInterview{OverallScore: 3})
	assert.ErrorIs(t, err, util.ErrNotFound)

	sessions, err := env.store.Sessions.List(ctx, u.ID, repositorySessionsAll())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestResumeCreatedAwardsFixedCoins(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "kate")
	ctx := context.Background()

	result, err := env.progress.ResumeCreated(ctx, u.ID, "  Kate Doe ")
	require.NoError(t, err)
	assert.Equal(t, 20, result.Awarded)
	assert.Equal(t, 20, result.Coins)
	assert.Equal(t, "Kate Doe", result.Resume.FullName)
	assert.Equal(t, 1, result.Activity.ResumesCreated)
	assert.Equal(t, 20, result.Activity.CoinsEarned)
	assert.Equal(t, 1, result.Stats.ResumesCreated)

	result, err = env.progress.ResumeCreated(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 40, result.Coins)
	assert.Equal(t, 2, result.Activity.ResumesCreated)
}

func TestInterviewCoins(t *testing.T) {
	p := &ProgressService{InterviewCoinsPerPoint: 2}
	assert.Equal(t, 0, p.InterviewCoins(0.9))
	assert.Equal(t, 6, p.InterviewCoins(3.99))
	assert.Equal(t, 10, p.InterviewCoins(5))
}
