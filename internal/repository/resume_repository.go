package repository

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"

	"gorm.io/gorm"
)

type ResumeRepository struct {
	DB *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{DB: db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	return util.WrapPersistence("create resume", r.DB.WithContext(ctx).Create(resume).Error)
}

func (r *ResumeRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]model.Resume, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var resumes []model.Resume
	err := query.Find(&resumes).Error
	return resumes, util.WrapPersistence("list resumes", err)
}
