package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/monitoring"
	"interview_prep_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// ActivityService 按日活动记录、连续天数与金币发放
type ActivityService struct {
	Users      repository.UserStore
	Activities repository.ActivityStore
	Cache      *StatsCache
	Location   *time.Location
	Now        func() time.Time
}

func NewActivityService(store *repository.Store, cache *StatsCache, loc *time.Location) *ActivityService {
	if loc == nil {
		loc = time.Local
	}
	return &ActivityService{
		Users:      store.Users,
		Activities: store.Activities,
		Cache:      cache,
		Location:   loc,
		Now:        time.Now,
	}
}

// Today 当前日历日在存储中的日期键
func (s *ActivityService) Today() time.Time {
	return util.DayKey(s.Now(), s.Location)
}

// RecordActivity 将增量累加到用户当天的活动记录上，并重新计算连续天数
func (s *ActivityService) RecordActivity(ctx context.Context, userID uint, delta model.ActivityDelta) (*model.Activity, error) {
	ctx, span := tracing.Tracer.Start(ctx, "activity.record")
	defer span.End()
	span.SetAttributes(attribute.Int("user.id", int(userID)))

	if delta.QuestionsSolved < 0 || delta.InterviewsCompleted < 0 || delta.ResumesCreated < 0 || delta.CoinsEarned < 0 {
		return nil, util.Validationf("activity increments must be non-negative")
	}
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	activity, err := s.Activities.Upsert(ctx, userID, s.Today(), delta)
	if err != nil {
		return nil, err
	}
	countActivity(delta)

	if _, err := s.UpdateStreak(ctx, userID); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, userID)
	return activity, nil
}

func countActivity(delta model.ActivityDelta) {
	if delta.QuestionsSolved > 0 {
		monitoring.ActivityRecords.WithLabelValues("question").Add(float64(delta.QuestionsSolved))
	}
	if delta.InterviewsCompleted > 0 {
		monitoring.ActivityRecords.WithLabelValues("interview").Add(float64(delta.InterviewsCompleted))
	}
	if delta.ResumesCreated > 0 {
		monitoring.ActivityRecords.WithLabelValues("resume").Add(float64(delta.ResumesCreated))
	}
}

// NextStreak 根据上次活跃时间计算新的连续天数
//
//	lastActive 为空     -> 1
//	同一天              -> 不变
//	相隔一天            -> +1
//	相隔两天及以上      -> 重置为 1
func NextStreak(prev int, lastActive *time.Time, now time.Time, loc *time.Location) int {
	if lastActive == nil {
		return 1
	}
	switch days := util.DaysBetween(*lastActive, now, loc); {
	case days <= 0:
		if prev < 1 {
			return 1
		}
		return prev
	case days == 1:
		return prev + 1
	default:
		return 1
	}
}

// UpdateStreak 重新计算连续天数，并无条件刷新 lastActive
// 同一用户跨零点的并发调用可能覆盖彼此的结果，同一天内的并发调用得到相同的值
func (s *ActivityService) UpdateStreak(ctx context.Context, userID uint) (int, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.Now()
	streak := NextStreak(user.Streak, user.LastActive, now, s.Location)
	if err := s.Users.UpdateStreak(ctx, userID, streak, now); err != nil {
		return 0, err
	}
	return streak, nil
}

// AwardCoins 增加金币余额，返回新余额
func (s *ActivityService) AwardCoins(ctx context.Context, userID uint, amount int) (int, error) {
	if amount <= 0 {
		return 0, util.Validationf("coin amount must be positive, got %d", amount)
	}
	coins, err := s.Users.AddCoins(ctx, userID, amount)
	if err != nil {
		return 0, err
	}
	monitoring.CoinsAwarded.Add(float64(amount))
	s.Cache.Invalidate(ctx, userID)
	return coins, nil
}
