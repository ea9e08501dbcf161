package repository

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

// 两种实现跑同一组用例
func eachStore(t *testing.T, fn func(t *testing.T, s *Store)) {
	t.Run("gorm", func(t *testing.T) { fn(t, NewGormStore(newTestDB(t))) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
}

func createUser(t *testing.T, s *Store, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Password: "x"}
	require.NoError(t, s.Users.Create(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func TestActivityUpsertConcurrent(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "alice")
		day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Activities.Upsert(ctx, u.ID, day, model.ActivityDelta{QuestionsSolved: 1, CoinsEarned: 2})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.Activities.Find(ctx, u.ID, day)
		require.NoError(t, err)
		assert.Equal(t, n, got.QuestionsSolved)
		assert.Equal(t, 2*n, got.CoinsEarned)
		assert.Zero(t, got.InterviewsCompleted)

		list, err := s.Activities.ListSince(ctx, u.ID, day, false)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestActivityListOrder(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "bob")
		base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			_, err := s.Activities.Upsert(ctx, u.ID, base.AddDate(0, 0, i), model.ActivityDelta{ResumesCreated: 1})
			require.NoError(t, err)
		}

		asc, err := s.Activities.ListSince(ctx, u.ID, base.AddDate(0, 0, 2), true)
		require.NoError(t, err)
		require.Len(t, asc, 3)
		assert.True(t, asc[0].Date.Before(asc[2].Date))

		desc, err := s.Activities.ListSince(ctx, u.ID, base, false)
		require.NoError(t, err)
		require.Len(t, desc, 5)
		assert.True(t, desc[0].Date.After(desc[4].Date))

		_, err = s.Activities.Find(ctx, u.ID, base.AddDate(0, 1, 0))
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestRecordInterviewScoreRunningAverage(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "carol")

		var stats *model.Stats
		var err error
		for _, score := range []float64{4, 2, 3} {
			stats, err = s.Users.RecordInterviewScore(ctx, u.ID, score)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, stats.InterviewsCompleted)
		assert.InDelta(t, 3.0, stats.AverageInterviewScore, 1e-9)
	})
}

func TestConcurrentStatsAndCoins(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "dave")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(3)
			go func() {
				defer wg.Done()
				_, err := s.Users.IncQuestionSolved(ctx, u.ID, model.DifficultyHard)
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := s.Users.AddCoins(ctx, u.ID, 5)
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := s.Users.IncResumesCreated(ctx, u.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Stats.TotalQuestionsSolved)
		assert.Equal(t, 10, got.Stats.QuestionsByDifficulty.Hard)
		assert.Equal(t, 10, got.Stats.ResumesCreated)
		assert.Equal(t, 50, got.Coins)
	})
}

func TestUserNotFound(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		_, err := s.Users.AddCoins(ctx, 999, 1)
		assert.ErrorIs(t, err, util.ErrNotFound)
		_, err = s.Users.IncQuestionSolved(ctx, 999, model.DifficultyEasy)
		assert.ErrorIs(t, err, util.ErrNotFound)
		err = s.Users.UpdateStreak(ctx, 999, 1, time.Now())
		assert.ErrorIs(t, err, util.ErrNotFound)
		_, err = s.Users.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestMarkSolvedIdempotent(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "erin")

		first, err := s.Users.MarkSolved(ctx, u.ID, 7)
		require.NoError(t, err)
		assert.True(t, first)

		again, err := s.Users.MarkSolved(ctx, u.ID, 7)
		require.NoError(t, err)
		assert.False(t, again)
	})
}

func TestUpdateProfilePartial(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "frank")

		bio := "backend engineer"
		gh := "https://github.com/frank"
		got, err := s.Users.UpdateProfile(ctx, u.ID, ProfileFields{Bio: &bio, GitHub: &gh, Skills: []string{"go", "sql"}})
		require.NoError(t, err)
		assert.Equal(t, bio, got.Bio)
		assert.Equal(t, gh, got.SocialLinks.GitHub)
		assert.Equal(t, []string{"go", "sql"}, []string(got.Skills))
		assert.Equal(t, "frank", got.Username)

		require.NoError(t, s.Users.ClearResume(ctx, u.ID))
	})
}

func TestSessionsAndResumes(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := createUser(t, s, "grace")
		now := time.Now().UTC().Truncate(time.Second)

		for i := 0; i < 4; i++ {
			sess := &model.InterviewSession{
				UserID:       u.ID,
				Type:         model.InterviewMixed,
				OverallScore: float64(i + 1),
				CompletedAt:  now.Add(time.Duration(i) * time.Hour),
				Questions:    []model.InterviewAnswer{{Question: "q", Answer: "a", Score: 5}},
			}
			require.NoError(t, s.Sessions.Insert(ctx, sess))
			require.NoError(t, s.Resumes.Create(ctx, &model.Resume{UserID: u.ID, FullName: "Grace", CreatedAt: now.Add(time.Duration(i) * time.Minute)}))
		}

		recent, err := s.Sessions.List(ctx, u.ID, SessionFilter{Limit: 3})
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, 4.0, recent[0].OverallScore)
		require.Len(t, recent[0].Questions, 1)

		since, err := s.Sessions.List(ctx, u.ID, SessionFilter{Since: now.Add(2 * time.Hour), Ascending: true})
		require.NoError(t, err)
		require.Len(t, since, 2)
		assert.Equal(t, 3.0, since[0].OverallScore)

		resumes, err := s.Resumes.ListRecent(ctx, u.ID, 3)
		require.NoError(t, err)
		assert.Len(t, resumes, 3)
	})
}

func TestQuestions(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		qs := []model.Question{
			{Title: "Two Sum", Description: "d", Category: model.CategoryCoding, Difficulty: "Easy", Points: 10, StarterCode: "func"},
			{Title: "Group Anagrams", Description: "d", Category: model.CategoryCoding, Difficulty: "Medium", Points: 20},
			{Title: "Conflict", Description: "d", Category: model.CategoryBehavioral, Difficulty: "Easy", Points: 5},
		}
		require.NoError(t, s.Questions.CreateBatch(ctx, qs))

		count, err := s.Questions.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		coding, err := s.Questions.List(ctx, QuestionFilter{Category: "Coding"})
		require.NoError(t, err)
		require.Len(t, coding, 2)
		assert.Empty(t, coding[0].StarterCode)

		q, err := s.Questions.FindByID(ctx, qs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "func", q.StarterCode)

		_, err = s.Questions.FindByID(ctx, 12345)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestCreateDuplicateAccount(t *testing.T) {
	eachStore(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		createUser(t, s, "henry")
		err := s.Users.Create(ctx, &model.User{Username: "henry", Email: "other@example.com", Password: "x"})
		assert.ErrorIs(t, err, util.ErrConflict)
	})
}
