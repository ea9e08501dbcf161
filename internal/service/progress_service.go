package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CompleteInterview 一次完成的面试
type CompleteInterview struct {
	Type         string
	Questions    []model.InterviewAnswer
	OverallScore float64
	Feedback     string
	Duration     int
}

// ProgressResult 一次进度事件产生的全部变化
type ProgressResult struct {
	Activity *model.Activity `json:"activity,omitempty"`
	Stats    *model.Stats    `json:"stats,omitempty"`
	Coins    int             `json:"coins"`
	Awarded  int             `json:"coinsEarned"`
	// 题目已解答过时为 true，此时不产生任何变化
	AlreadySolved bool                    `json:"alreadySolved,omitempty"`
	Session       *model.InterviewSession `json:"session,omitempty"`
	Resume        *model.Resume           `json:"resume,omitempty"`
}

// ProgressService 按事件类型组合活动记录、金币与统计更新
type ProgressService struct {
	Users    repository.UserStore
	Sessions repository.InterviewSessionStore
	Resumes  repository.ResumeStore
	Activity *ActivityService
	Stats    *StatsService

	ResumeCoins            int
	InterviewCoinsPerPoint int
}

func NewProgressService(store *repository.Store, activity *ActivityService, stats *StatsService, resumeCoins, coinsPerPoint int) *ProgressService {
	return &ProgressService{
		Users:                  store.Users,
		Sessions:               store.Sessions,
		Resumes:                store.Resumes,
		Activity:               activity,
		Stats:                  stats,
		ResumeCoins:            resumeCoins,
		InterviewCoinsPerPoint: coinsPerPoint,
	}
}

// QuestionSolved 首次解出题目时发放题目积分并记录活动
func (s *ProgressService) QuestionSolved(ctx context.Context, userID uint, question *model.Question) (*ProgressResult, error) {
	difficulty, err := NormalizeDifficulty(question.Difficulty)
	if err != nil {
		return nil, err
	}

	first, err := s.Users.MarkSolved(ctx, userID, question.ID)
	if err != nil {
		return nil, err
	}
	if !first {
		coins, err := s.balance(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ProgressResult{Coins: coins, AlreadySolved: true}, nil
	}

	result := &ProgressResult{Awarded: question.Points}
	if result.Coins, err = s.award(ctx, userID, question.Points); err != nil {
		return nil, err
	}
	if result.Activity, err = s.Activity.RecordActivity(ctx, userID, model.ActivityDelta{
		QuestionsSolved: 1,
		CoinsEarned:     question.Points,
	}); err != nil {
		return nil, err
	}
	if result.Stats, err = s.Stats.Apply(ctx, userID, QuestionSolved{Difficulty: difficulty}); err != nil {
		return nil, err
	}

	logger.Log.Info("Question solved",
		zap.Uint("userID", userID),
		zap.Uint("questionID", question.ID),
		zap.Int("points", question.Points))
	return result, nil
}

// InterviewCoins 面试奖励金币：floor(score) * 每分金币数
func (s *ProgressService) InterviewCoins(score float64) int {
	return int(math.Floor(score)) * s.InterviewCoinsPerPoint
}

// InterviewCompleted 保存面试记录，发放金币，记录活动并更新平均分
func (s *ProgressService) InterviewCompleted(ctx context.Context, userID uint, in CompleteInterview) (*ProgressResult, error) {
	if in.OverallScore < MinInterviewScore || in.OverallScore > MaxInterviewScore {
		return nil, util.Validationf("overall score %.2f out of range [%d, %d]", in.OverallScore, MinInterviewScore, MaxInterviewScore)
	}
	if in.Duration < 0 {
		return nil, util.Validationf("duration must be non-negative")
	}
	for _, a := range in.Questions {
		if a.Score < 1 || a.Score > 5 {
			return nil, util.Validationf("answer score %d out of range [1, 5]", a.Score)
		}
	}
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	interviewType := strings.TrimSpace(in.Type)
	if interviewType == "" {
		interviewType = model.InterviewMixed
	}
	session := &model.InterviewSession{
		UserID:       userID,
		Type:         interviewType,
		Questions:    in.Questions,
		OverallScore: in.OverallScore,
		Feedback:     in.Feedback,
		Duration:     in.Duration,
		CompletedAt:  time.Now(),
	}
	if err := s.Sessions.Insert(ctx, session); err != nil {
		return nil, err
	}

	coins := s.InterviewCoins(in.OverallScore)
	result := &ProgressResult{Session: session, Awarded: coins}
	var err error
	if result.Activity, err = s.Activity.RecordActivity(ctx, userID, model.ActivityDelta{
		InterviewsCompleted: 1,
		CoinsEarned:         coins,
	}); err != nil {
		return nil, err
	}
	if result.Coins, err = s.award(ctx, userID, coins); err != nil {
		return nil, err
	}
	if result.Stats, err = s.Stats.Apply(ctx, userID, InterviewCompleted{Score: in.OverallScore}); err != nil {
		return nil, err
	}
	return result, nil
}

// ResumeCreated 记录一次简历创建并发放固定金币
func (s *ProgressService) ResumeCreated(ctx context.Context, userID uint, fullName string) (*ProgressResult, error) {
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	resume := &model.Resume{UserID: userID, FullName: strings.TrimSpace(fullName), CreatedAt: time.Now()}
	if err := s.Resumes.Create(ctx, resume); err != nil {
		return nil, err
	}

	result := &ProgressResult{Resume: resume, Awarded: s.ResumeCoins}
	var err error
	if result.Coins, err = s.award(ctx, userID, s.ResumeCoins); err != nil {
		return nil, err
	}
	if result.Activity, err = s.Activity.RecordActivity(ctx, userID, model.ActivityDelta{
		ResumesCreated: 1,
		CoinsEarned:    s.ResumeCoins,
	}); err != nil {
		return nil, err
	}
	if result.Stats, err = s.Stats.Apply(ctx, userID, ResumeCreated{}); err != nil {
		return nil, err
	}
	return result, nil
}

// award 金币为 0 时只读取当前余额
func (s *ProgressService) award(ctx context.Context, userID uint, amount int) (int, error) {
	if amount > 0 {
		return s.Activity.AwardCoins(ctx, userID, amount)
	}
	return s.balance(ctx, userID)
}

func (s *ProgressService) balance(ctx context.Context, userID uint) (int, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Coins, nil
}
