package repository

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateAccount
	}
	return util.WrapPersistence("create user", err)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapUserErr("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapUserErr("find user by email", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, fields ProfileFields) (*model.User, error) {
	updates := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("username", fields.Username)
	set("bio", fields.Bio)
	set("current_position", fields.CurrentPosition)
	set("location", fields.Location)
	set("avatar", fields.Avatar)
	set("banner", fields.Banner)
	set("resume", fields.Resume)
	set("social_github", fields.GitHub)
	set("social_linkedin", fields.LinkedIn)
	set("social_portfolio", fields.Portfolio)
	if fields.Skills != nil {
		updates["skills"] = datatypes.JSONSlice[string](fields.Skills)
	}

	if len(updates) > 0 {
		res := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateAccount
		}
		if res.Error != nil {
			return nil, util.WrapPersistence("update profile", res.Error)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) ClearResume(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("resume", "")
	if res.Error != nil {
		return util.WrapPersistence("clear resume", res.Error)
	}
	return nil
}

func (r *UserRepository) UpdateStreak(ctx context.Context, id uint, streak int, lastActive time.Time) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"streak":      streak,
			"last_active": lastActive,
		})
	if res.Error != nil {
		return util.WrapPersistence("update streak", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AddCoins(ctx context.Context, id uint, amount int) (int, error) {
	var coins int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ?", id).
			UpdateColumn("coins", gorm.Expr("coins + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrUserNotFound
		}
		return tx.Model(&model.User{}).Where("id = ?", id).Pluck("coins", &coins).Error
	})
	if err != nil {
		return 0, util.WrapPersistence("add coins", err)
	}
	return coins, nil
}

func (r *UserRepository) IncQuestionSolved(ctx context.Context, id uint, difficulty string) (*model.Stats, error) {
	updates := map[string]interface{}{
		"stats_total_questions_solved": gorm.Expr("stats_total_questions_solved + 1"),
	}
	switch difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		column := "stats_by_difficulty_" + difficulty
		updates[column] = gorm.Expr(column + " + 1")
	}
	return r.updateStats(ctx, id, "increment questions solved", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&model.User{}).Where("id = ?", id).UpdateColumns(updates)
	})
}

// RecordInterviewScore 平均分写在计数之前，MySQL 按从左到右求值，两者都基于更新前的计数
func (r *UserRepository) RecordInterviewScore(ctx context.Context, id uint, score float64) (*model.Stats, error) {
	return r.updateStats(ctx, id, "record interview score", func(tx *gorm.DB) *gorm.DB {
		return tx.Exec(
			"UPDATE users SET "+
				"stats_average_interview_score = (stats_average_interview_score * stats_interviews_completed + ?) / (stats_interviews_completed + 1), "+
				"stats_interviews_completed = stats_interviews_completed + 1 "+
				"WHERE id = ? AND deleted_at IS NULL",
			score, id,
		)
	})
}

func (r *UserRepository) IncResumesCreated(ctx context.Context, id uint) (*model.Stats, error) {
	return r.updateStats(ctx, id, "increment resumes created", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&model.User{}).Where("id = ?", id).
			UpdateColumn("stats_resumes_created", gorm.Expr("stats_resumes_created + 1"))
	})
}

func (r *UserRepository) updateStats(ctx context.Context, id uint, op string, update func(tx *gorm.DB) *gorm.DB) (*model.Stats, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := update(tx)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrUserNotFound
		}
		return tx.Select("id", "stats_total_questions_solved", "stats_by_difficulty_easy",
			"stats_by_difficulty_medium", "stats_by_difficulty_hard", "stats_interviews_completed",
			"stats_average_interview_score", "stats_resumes_created").
			First(&user, id).Error
	})
	if err != nil {
		return nil, mapUserErr(op, err)
	}
	return &user.Stats, nil
}

func (r *UserRepository) MarkSolved(ctx context.Context, userID, questionID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.SolvedQuestion{UserID: userID, QuestionID: questionID})
	if res.Error != nil {
		return false, util.WrapPersistence("mark solved", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func mapUserErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	return util.WrapPersistence(op, err)
}
