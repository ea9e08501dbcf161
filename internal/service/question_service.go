package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

type QuestionService struct {
	Questions repository.QuestionStore
	Progress  *ProgressService
}

func NewQuestionService(store *repository.Store, progress *ProgressService) *QuestionService {
	return &QuestionService{Questions: store.Questions, Progress: progress}
}

func (s *QuestionService) List(ctx context.Context, category, difficulty string) ([]model.Question, error) {
	questions, err := s.Questions.List(ctx, repository.QuestionFilter{Category: category, Difficulty: difficulty})
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*model.Question, error) {
	return s.Questions.FindByID(ctx, id)
}

// Submit 提交题目答案；只有第一次提交会发放积分
func (s *QuestionService) Submit(ctx context.Context, userID, questionID uint) (*model.Question, *ProgressResult, error) {
	question, err := s.Questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.Progress.QuestionSolved(ctx, userID, question)
	if err != nil {
		return nil, nil, err
	}
	return question, result, nil
}

// SeedDefaults 题库为空时写入初始题目
func (s *QuestionService) SeedDefaults(ctx context.Context) error {
	count, err := s.Questions.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	questions := DefaultQuestions()
	if err := s.Questions.CreateBatch(ctx, questions); err != nil {
		return err
	}
	logger.Log.Info("Seeded question bank", zap.Int("count", len(questions)))
	return nil
}
