package service

import (
	"context"
	"errors"
	"interview_prep_backend/internal/interview"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewEvaluate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInterviewService(interview.DefaultBank(), env.progress, env.cfg.Interview)

	res, err := svc.Evaluate("frontend", 0, "I would use a closure so the inner function keeps the variable")
	require.NoError(t, err)
	assert.Equal(t, "Frontend", res.Track)
	assert.Equal(t, interview.VerdictCorrect, res.Evaluation.Verdict)
	assert.Contains(t, res.Evaluation.Matches, "closure")
	assert.NotEmpty(t, res.Feedback)

	res, err = svc.Evaluate("Frontend", 0, "no idea")
	require.NoError(t, err)
	assert.NotEqual(t, interview.VerdictCorrect, res.Evaluation.Verdict)

	_, err = svc.Evaluate("Data Science", 0, "anything at all goes here")
	assert.True(t, errors.Is(err, interview.ErrUnknownTrack))
	_, err = svc.Evaluate("Frontend", 9, "anything at all goes here")
	assert.True(t, errors.Is(err, interview.ErrInvalidState))
	_, err = svc.Evaluate("Frontend", 0, "   ")
	assert.True(t, errors.Is(err, interview.ErrInvalidState))
}

func TestInterviewRecordPersistsAndRewards(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "tina")
	svc := NewInterviewService(interview.DefaultBank(), env.progress, env.cfg.Interview)
	ctx := context.Background()

	err := svc.RecordInterview(ctx, u.ID, interview.Result{
		Track:        "Backend",
		Score:        20,
		Accuracy:     67,
		OverallScore: 2,
		Duration:     15,
		Answers: []interview.Answer{
			{Question: "q1", Answer: "a1", Score: 5},
			{Question: "q2", Answer: "a2", Score: 5},
			{Question: "q3", Answer: "a3", Score: 1},
		},
		StartedAt:   time.Now().Add(-time.Minute),
		CompletedAt: time.Now(),
	})
	require.NoError(t, err)

	sessions, err := env.store.Sessions.List(ctx, u.ID, repositorySessionsAll())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "backend", sessions[0].Type)
	assert.Equal(t, "Scored 20 points with 67% accuracy.", sessions[0].Feedback)
	assert.Len(t, sessions[0].Questions, 3)

	user := env.reload(t, u.ID)
	assert.Equal(t, 4, user.Coins)
	assert.Equal(t, 1, user.Stats.InterviewsCompleted)
	assert.InDelta(t, 2.0, user.Stats.AverageInterviewScore, 1e-9)
}

func TestInterviewUpdateConfig(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInterviewService(interview.DefaultBank(), env.progress, env.cfg.Interview)
	assert.Equal(t, time.Duration(0), svc.Pacing().Thinking)

	cfg := env.cfg.Interview
	cfg.ThinkingDelayMs = 250
	svc.UpdateConfig(cfg)
	assert.Equal(t, 250*time.Millisecond, svc.Pacing().Thinking)
	assert.Len(t, svc.Tracks(), 3)
}
