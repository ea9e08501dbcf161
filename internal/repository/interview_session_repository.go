package repository

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"

	"gorm.io/gorm"
)

type InterviewSessionRepository struct {
	DB *gorm.DB
}

func NewInterviewSessionRepository(db *gorm.DB) *InterviewSessionRepository {
	return &InterviewSessionRepository{DB: db}
}

func (r *InterviewSessionRepository) Insert(ctx context.Context, session *model.InterviewSession) error {
	return util.WrapPersistence("insert interview session", r.DB.WithContext(ctx).Create(session).Error)
}

func (r *InterviewSessionRepository) List(ctx context.Context, userID uint, filter SessionFilter) ([]model.InterviewSession, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.Since.IsZero() {
		query = query.Where("completed_at >= ?", filter.Since)
	}
	if filter.Ascending {
		query = query.Order("completed_at ASC")
	} else {
		query = query.Order("completed_at DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var sessions []model.InterviewSession
	err := query.Find(&sessions).Error
	return sessions, util.WrapPersistence("list interview sessions", err)
}
