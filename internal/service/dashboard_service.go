package service

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"sort"
	"time"
)

const (
	DefaultActivityDays    = 30
	DefaultPerformanceDays = 7
	DefaultRecentLimit     = 10
	// 最近动态中每种来源最多取的条数
	recentPerSource = 3
)

// DashboardStats 仪表盘概要
type DashboardStats struct {
	Stats  model.Stats `json:"stats"`
	Coins  int         `json:"coins"`
	Streak int         `json:"streak"`
}

// RecentItem 最近动态中的一条
type RecentItem struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Score       *float64  `json:"score,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Performance 一段时间内的活动与面试趋势，均按时间升序
type Performance struct {
	Activities []model.Activity         `json:"activities"`
	Interviews []model.InterviewSession `json:"interviews"`
}

type DashboardService struct {
	Users      repository.UserStore
	Activities repository.ActivityStore
	Sessions   repository.InterviewSessionStore
	Resumes    repository.ResumeStore
	Cache      *StatsCache
	Location   *time.Location
	Now        func() time.Time
}

func NewDashboardService(store *repository.Store, cache *StatsCache, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		Users:      store.Users,
		Activities: store.Activities,
		Sessions:   store.Sessions,
		Resumes:    store.Resumes,
		Cache:      cache,
		Location:   loc,
		Now:        time.Now,
	}
}

func (s *DashboardService) GetStats(ctx context.Context, userID uint) (*DashboardStats, error) {
	var cached DashboardStats
	if s.Cache.Get(ctx, userID, &cached) {
		return &cached, nil
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{Stats: user.Stats, Coins: user.Coins, Streak: user.Streak}
	s.Cache.Set(ctx, userID, stats)
	return stats, nil
}

// since 返回 days 天前的时间点及其对应的日期键
func (s *DashboardService) since(days int) (time.Time, time.Time) {
	start := s.Now().AddDate(0, 0, -days)
	y, m, d := start.In(s.Location).Date()
	return start, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ActivityHistory 最近 days 天的活动记录，按日期倒序
func (s *DashboardService) ActivityHistory(ctx context.Context, userID uint, days int) ([]model.Activity, error) {
	if days <= 0 {
		days = DefaultActivityDays
	}
	_, day := s.since(days)
	activities, err := s.Activities.ListSince(ctx, userID, day, false)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	return activities, nil
}

// Recent 合并最近的面试与简历记录，按时间倒序截取 limit 条
func (s *DashboardService) Recent(ctx context.Context, userID uint, limit int) ([]RecentItem, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	sessions, err := s.Sessions.List(ctx, userID, repository.SessionFilter{Limit: recentPerSource})
	if err != nil {
		return nil, err
	}
	resumes, err := s.Resumes.ListRecent(ctx, userID, recentPerSource)
	if err != nil {
		return nil, err
	}

	items := make([]RecentItem, 0, len(sessions)+len(resumes))
	for _, session := range sessions {
		score := session.OverallScore
		items = append(items, RecentItem{
			Type:        "interview",
			Description: fmt.Sprintf("Completed %s interview", session.Type),
			Score:       &score,
			Timestamp:   session.CompletedAt,
		})
	}
	for _, resume := range resumes {
		name := resume.FullName
		if name == "" {
			name = "Untitled"
		}
		items = append(items, RecentItem{
			Type:        "resume",
			Description: "Created resume: " + name,
			Timestamp:   resume.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *DashboardService) Performance(ctx context.Context, userID uint, days int) (*Performance, error) {
	if days <= 0 {
		days = DefaultPerformanceDays
	}
	start, day := s.since(days)

	activities, err := s.Activities.ListSince(ctx, userID, day, true)
	if err != nil {
		return nil, err
	}
	sessions, err := s.Sessions.List(ctx, userID, repository.SessionFilter{Since: start, Ascending: true})
	if err != nil {
		return nil, err
	}

	perf := &Performance{Activities: activities, Interviews: sessions}
	if perf.Activities == nil {
		perf.Activities = []model.Activity{}
	}
	if perf.Interviews == nil {
		perf.Interviews = []model.InterviewSession{}
	}
	return perf, nil
}
