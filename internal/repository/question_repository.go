package repository

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// List 列表接口不返回测试用例和初始代码
func (r *QuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	query := r.DB.WithContext(ctx).Omit("test_cases", "starter_code")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var questions []model.Question
	err := query.Order("id ASC").Find(&questions).Error
	return questions, util.WrapPersistence("list questions", err)
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.DB.WithContext(ctx).First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, util.WrapPersistence("find question", err)
	}
	return &question, nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Question{}).Count(&count).Error
	return count, util.WrapPersistence("count questions", err)
}

func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return util.WrapPersistence("create questions", r.DB.WithContext(ctx).CreateInBatches(questions, 50).Error)
}
