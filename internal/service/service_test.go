package service

import (
	"context"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store     *repository.Store
	clock     *fakeClock
	activity  *ActivityService
	stats     *StatsService
	progress  *ProgressService
	dashboard *DashboardService
	cfg       *config.Config
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)}
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: 5 * time.Hour},
		Rewards: config.RewardsConfig{ResumeCoins: 20, InterviewCoinsPerPoint: 2},
		Interview: config.InterviewConfig{
			CorrectThreshold:  1,
			ShortAnswerPolicy: "retry",
			DurationMinutes:   15,
		},
	}

	activity := NewActivityService(store, nil, time.UTC)
	activity.Now = clock.Now
	stats := NewStatsService(store, nil)
	dashboard := NewDashboardService(store, nil, time.UTC)
	dashboard.Now = clock.Now

	return &testEnv{
		store:     store,
		clock:     clock,
		activity:  activity,
		stats:     stats,
		progress:  NewProgressService(store, activity, stats, cfg.Rewards.ResumeCoins, cfg.Rewards.InterviewCoinsPerPoint),
		dashboard: dashboard,
		cfg:       cfg,
	}
}

func (e *testEnv) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, e.store.Users.Create(context.Background(), u))
	return u
}

func (e *testEnv) reload(t *testing.T, id uint) *model.User {
	t.Helper()
	u, err := e.store.Users.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func repositorySessionsAll() repository.SessionFilter {
	return repository.SessionFilter{}
}
