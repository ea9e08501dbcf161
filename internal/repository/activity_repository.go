package repository

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Upsert 单条 INSERT ... ON CONFLICT/ON DUPLICATE KEY 语句完成累加，并发调用不会丢失更新
func (r *ActivityRepository) Upsert(ctx context.Context, userID uint, day time.Time, delta model.ActivityDelta) (*model.Activity, error) {
	row := model.Activity{
		UserID:              userID,
		Date:                day,
		QuestionsSolved:     delta.QuestionsSolved,
		InterviewsCompleted: delta.InterviewsCompleted,
		ResumesCreated:      delta.ResumesCreated,
		CoinsEarned:         delta.CoinsEarned,
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_solved":     gorm.Expr("questions_solved + ?", delta.QuestionsSolved),
			"interviews_completed": gorm.Expr("interviews_completed + ?", delta.InterviewsCompleted),
			"resumes_created":      gorm.Expr("resumes_created + ?", delta.ResumesCreated),
			"coins_earned":         gorm.Expr("coins_earned + ?", delta.CoinsEarned),
			"updated_at":           time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, util.WrapPersistence("upsert activity", err)
	}

	return r.Find(ctx, userID, day)
}

func (r *ActivityRepository) Find(ctx context.Context, userID uint, day time.Time) (*model.Activity, error) {
	var activity model.Activity
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, util.WrapPersistence("find activity", err)
	}
	return &activity, nil
}

func (r *ActivityRepository) ListSince(ctx context.Context, userID uint, since time.Time, ascending bool) ([]model.Activity, error) {
	order := "date DESC"
	if ascending {
		order = "date ASC"
	}
	var activities []model.Activity
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order(order).
		Find(&activities).Error
	return activities, util.WrapPersistence("list activities", err)
}
