package service

import (
	"context"
	"interview_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsQuestionSolvedBuckets(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "erin")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.stats.Apply(ctx, u.ID, QuestionSolved{Difficulty: "easy"})
		require.NoError(t, err)
	}
	stats, err := env.stats.Apply(ctx, u.ID, QuestionSolved{Difficulty: "Hard"})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalQuestionsSolved)
	assert.Equal(t, 3, stats.QuestionsByDifficulty.Easy)
	assert.Equal(t, 0, stats.QuestionsByDifficulty.Medium)
	assert.Equal(t, 1, stats.QuestionsByDifficulty.Hard)

	stats, err = env.stats.Apply(ctx, u.ID, QuestionSolved{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.QuestionsByDifficulty.Medium)

	_, err = env.stats.Apply(ctx, u.ID, QuestionSolved{Difficulty: "expert"})
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.Equal(t, 5, env.reload(t, u.ID).Stats.TotalQuestionsSolved)
}

func TestStatsRunningAverage(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "frank")
	ctx := context.Background()

	for _, score := range []float64{4, 2, 3} {
		_, err := env.stats.Apply(ctx, u.ID, InterviewCompleted{Score: score})
		require.NoError(t, err)
	}
	stats := env.reload(t, u.ID).Stats
	assert.Equal(t, 3, stats.InterviewsCompleted)
	assert.InDelta(t, 3.0, stats.AverageInterviewScore, 1e-9)

	_, err := env.stats.Apply(ctx, u.ID, InterviewCompleted{Score: 5.5})
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = env.stats.Apply(ctx, u.ID, InterviewCompleted{Score: -1})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestStatsResumeAndMissingUser(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "gina")
	ctx := context.Background()

	stats, err := env.stats.Apply(ctx, u.ID, ResumeCreated{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ResumesCreated)

	_, err = env.stats.Apply(ctx, 404, ResumeCreated{})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := map[string]string{"": "medium", "EASY": "easy", " medium ": "medium", "hard": "hard"}
	for in, want := range tests {
		got, err := NormalizeDifficulty(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := NormalizeDifficulty("trivial")
	assert.ErrorIs(t, err, util.ErrValidation)
}
