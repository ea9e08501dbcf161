package service

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/interview"
	"interview_prep_backend/internal/model"
	"strings"
	"sync"
)

// InterviewService 模拟面试：题库查询、单题评估、实时会话与结果保存
type InterviewService struct {
	Bank     *interview.Bank
	Progress *ProgressService

	mu     sync.RWMutex
	cfg    config.InterviewConfig
	picker interview.Picker
}

func NewInterviewService(bank *interview.Bank, progress *ProgressService, cfg config.InterviewConfig) *InterviewService {
	return &InterviewService{
		Bank:     bank,
		Progress: progress,
		cfg:      cfg,
		picker:   interview.NewRandomPicker(),
	}
}

// UpdateConfig 配置热更新，只影响之后创建的会话
func (s *InterviewService) UpdateConfig(cfg config.InterviewConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *InterviewService) options() interview.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return interview.Options{
		Grading: interview.Grading{
			CorrectThreshold: s.cfg.CorrectThreshold,
			ShortLength:      interview.DefaultShortLength,
		},
		ShortPolicy:     interview.ParseShortPolicy(s.cfg.ShortAnswerPolicy),
		Phrases:         interview.DefaultPhrasebook(),
		Picker:          s.picker,
		DurationMinutes: s.cfg.DurationMinutes,
	}
}

// Pacing 当前配置下的停顿时长
func (s *InterviewService) Pacing() interview.Pacing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	thinking, reading, correction, closing := s.cfg.Delays()
	return interview.Pacing{Thinking: thinking, Reading: reading, Correction: correction, Closing: closing}
}

func (s *InterviewService) Tracks() []interview.Track {
	return s.Bank.Tracks()
}

// EvaluateResult 单题评估结果
type EvaluateResult struct {
	Track      string               `json:"track"`
	Index      int                  `json:"questionIndex"`
	Question   string               `json:"question"`
	Evaluation interview.Evaluation `json:"evaluation"`
	Feedback   string               `json:"feedback"`
}

// Evaluate 不建立会话，直接对某一题的回答评分
func (s *InterviewService) Evaluate(track string, index int, answer string) (*EvaluateResult, error) {
	t, err := s.Bank.Track(track)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(t.Questions) {
		return nil, fmt.Errorf("%w: question index %d out of range", interview.ErrInvalidState, index)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: empty answer", interview.ErrInvalidState)
	}

	opts := s.options()
	q := t.Questions[index]
	eval := interview.Classify(answer, q, opts.Grading)
	return &EvaluateResult{
		Track:      t.Name,
		Index:      index,
		Question:   q.Text,
		Evaluation: eval,
		Feedback:   interview.Feedback(eval, q, opts.Phrases, opts.Picker),
	}, nil
}

// NewSession 为一个连接创建实时面试会话
func (s *InterviewService) NewSession(ctx context.Context, userID uint, emit func(interview.Frame)) *interview.Session {
	engine := interview.NewEngine(s.Bank, s.options())
	return interview.NewSession(ctx, userID, engine, s.Pacing(), s, emit)
}

// RecordInterview 保存完成的面试并发放奖励
func (s *InterviewService) RecordInterview(ctx context.Context, userID uint, result interview.Result) error {
	answers := make([]model.InterviewAnswer, len(result.Answers))
	for i, a := range result.Answers {
		answers[i] = model.InterviewAnswer{Question: a.Question, Answer: a.Answer, Score: a.Score}
	}
	_, err := s.Progress.InterviewCompleted(ctx, userID, CompleteInterview{
		Type:         strings.ToLower(result.Track),
		Questions:    answers,
		OverallScore: result.OverallScore,
		Feedback:     fmt.Sprintf("Scored %d points with %d%% accuracy.", result.Score, result.Accuracy),
		Duration:     result.Duration,
	})
	return err
}
