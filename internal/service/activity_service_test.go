package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivityIsAdditive(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "alice")
	ctx := context.Background()

	deltas := []model.ActivityDelta{
		{QuestionsSolved: 1, CoinsEarned: 10},
		{InterviewsCompleted: 1, CoinsEarned: 6},
		{ResumesCreated: 1},
		{QuestionsSolved: 2},
	}
	var wg sync.WaitGroup
	for _, d := range deltas {
		wg.Add(1)
		go func(d model.ActivityDelta) {
			defer wg.Done()
			_, err := env.activity.RecordActivity(ctx, u.ID, d)
			assert.NoError(t, err)
		}(d)
	}
	wg.Wait()

	got, err := env.store.Activities.Find(ctx, u.ID, env.activity.Today())
	require.NoError(t, err)
	assert.Equal(t, 3, got.QuestionsSolved)
	assert.Equal(t, 1, got.InterviewsCompleted)
	assert.Equal(t, 1, got.ResumesCreated)
	assert.Equal(t, 16, got.CoinsEarned)

	list, err := env.store.Activities.ListSince(ctx, u.ID, env.activity.Today(), false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordActivityErrors(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "bob")
	ctx := context.Background()

	_, err := env.activity.RecordActivity(ctx, 999, model.ActivityDelta{QuestionsSolved: 1})
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = env.activity.RecordActivity(ctx, u.ID, model.ActivityDelta{CoinsEarned: -1})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestUpdateStreakTransitions(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "carol")
	ctx := context.Background()

	streak, err := env.activity.UpdateStreak(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// 同一天再次调用：不变，但刷新 lastActive
	env.clock.Advance(3 * time.Hour)
	streak, err = env.activity.UpdateStreak(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, env.clock.now, *env.reload(t, u.ID).LastActive)

	env.clock.Advance(24 * time.Hour)
	streak, err = env.activity.UpdateStreak(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	env.clock.Advance(24 * time.Hour)
	streak, err = env.activity.UpdateStreak(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	env.clock.Advance(48 * time.Hour)
	streak, err = env.activity.UpdateStreak(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestNextStreak(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := func(day, hour int) time.Time { return time.Date(2024, 1, day, hour, 0, 0, 0, loc) }
	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name       string
		prev       int
		lastActive *time.Time
		now        time.Time
		want       int
	}{
		{"first activity", 0, nil, at(5, 12), 1},
		{"same day", 4, ptr(at(5, 1)), at(5, 23), 4},
		{"yesterday late night", 4, ptr(at(4, 23)), at(5, 0), 5},
		{"two day gap", 4, ptr(at(3, 12)), at(5, 12), 1},
		{"long gap", 9, ptr(at(1, 12)), at(20, 12), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.prev, tt.lastActive, tt.now, loc))
		})
	}
}

func TestAwardCoins(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "dave")
	ctx := context.Background()

	coins, err := env.activity.AwardCoins(ctx, u.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, coins)

	coins, err = env.activity.AwardCoins(ctx, u.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, coins)

	_, err = env.activity.AwardCoins(ctx, u.ID, 0)
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = env.activity.AwardCoins(ctx, 999, 5)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
