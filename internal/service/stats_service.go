package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/tracing"
	"strings"
)

// StatsEvent 统计更新事件：QuestionSolved、InterviewCompleted 或 ResumeCreated
type StatsEvent interface {
	statsEvent()
}

type QuestionSolved struct {
	Difficulty string
}

type InterviewCompleted struct {
	Score float64
}

type ResumeCreated struct{}

func (QuestionSolved) statsEvent()     {}
func (InterviewCompleted) statsEvent() {}
func (ResumeCreated) statsEvent()      {}

const (
	MinInterviewScore = 0
	MaxInterviewScore = 5
)

type StatsService struct {
	Users repository.UserStore
	Cache *StatsCache
}

func NewStatsService(store *repository.Store, cache *StatsCache) *StatsService {
	return &StatsService{Users: store.Users, Cache: cache}
}

// NormalizeDifficulty 将难度归一到 easy/medium/hard，空值按 medium 处理
func NormalizeDifficulty(difficulty string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(difficulty))
	switch d {
	case "":
		return model.DifficultyMedium, nil
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		return d, nil
	}
	return "", util.Validationf("unknown difficulty %q", difficulty)
}

// Apply 对单个用户原子地应用一个统计事件，返回更新后的统计
func (s *StatsService) Apply(ctx context.Context, userID uint, event StatsEvent) (*model.Stats, error) {
	ctx, span := tracing.Tracer.Start(ctx, "stats.apply")
	defer span.End()

	var (
		stats *model.Stats
		err   error
	)
	switch ev := event.(type) {
	case QuestionSolved:
		difficulty, verr := NormalizeDifficulty(ev.Difficulty)
		if verr != nil {
			return nil, verr
		}
		stats, err = s.Users.IncQuestionSolved(ctx, userID, difficulty)
	case InterviewCompleted:
		if ev.Score < MinInterviewScore || ev.Score > MaxInterviewScore {
			return nil, util.Validationf("interview score %.2f out of range [%d, %d]", ev.Score, MinInterviewScore, MaxInterviewScore)
		}
		stats, err = s.Users.RecordInterviewScore(ctx, userID, ev.Score)
	case ResumeCreated:
		stats, err = s.Users.IncResumesCreated(ctx, userID)
	default:
		return nil, util.Validationf("unsupported stats event %T", event)
	}
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, userID)
	return stats, nil
}
