package repository

import (
	"context"
	"interview_prep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// ProfileFields 资料更新命令，nil 字段保持不变
type ProfileFields struct {
	Username        *string
	Bio             *string
	CurrentPosition *string
	Skills          []string
	Location        *string
	Avatar          *string
	Banner          *string
	Resume          *string
	GitHub          *string
	LinkedIn        *string
	Portfolio       *string
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, fields ProfileFields) (*model.User, error)
	ClearResume(ctx context.Context, id uint) error
	UpdateStreak(ctx context.Context, id uint, streak int, lastActive time.Time) error
	// AddCoins 原子增加金币，返回新余额
	AddCoins(ctx context.Context, id uint, amount int) (int, error)
	// 以下统计更新均为单用户原子操作
	IncQuestionSolved(ctx context.Context, id uint, difficulty string) (*model.Stats, error)
	RecordInterviewScore(ctx context.Context, id uint, score float64) (*model.Stats, error)
	IncResumesCreated(ctx context.Context, id uint) (*model.Stats, error)
	// MarkSolved 记录已解题目，首次记录返回 true
	MarkSolved(ctx context.Context, userID, questionID uint) (bool, error)
}

type ActivityStore interface {
	// Upsert 按 (userID, day) 原子累加计数，不存在时创建
	Upsert(ctx context.Context, userID uint, day time.Time, delta model.ActivityDelta) (*model.Activity, error)
	Find(ctx context.Context, userID uint, day time.Time) (*model.Activity, error)
	ListSince(ctx context.Context, userID uint, since time.Time, ascending bool) ([]model.Activity, error)
}

// SessionFilter 面试记录查询条件，零值表示不限
type SessionFilter struct {
	Since     time.Time
	Limit     int
	Ascending bool
}

type InterviewSessionStore interface {
	Insert(ctx context.Context, session *model.InterviewSession) error
	List(ctx context.Context, userID uint, filter SessionFilter) ([]model.InterviewSession, error)
}

type QuestionFilter struct {
	Category   string
	Difficulty string
}

type QuestionStore interface {
	List(ctx context.Context, filter QuestionFilter) ([]model.Question, error)
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, questions []model.Question) error
}

type ResumeStore interface {
	Create(ctx context.Context, resume *model.Resume) error
	ListRecent(ctx context.Context, userID uint, limit int) ([]model.Resume, error)
}

// Store 持久化策略，启动时选定一次并显式注入各服务
type Store struct {
	Users      UserStore
	Activities ActivityStore
	Sessions   InterviewSessionStore
	Questions  QuestionStore
	Resumes    ResumeStore

	ping func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      NewUserRepository(db),
		Activities: NewActivityRepository(db),
		Sessions:   NewInterviewSessionRepository(db),
		Questions:  NewQuestionRepository(db),
		Resumes:    NewResumeRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

func NewMemoryStore() *Store {
	mem := newMemoryDB()
	return &Store{
		Users:      &memoryUsers{mem},
		Activities: &memoryActivities{mem},
		Sessions:   &memorySessions{mem},
		Questions:  &memoryQuestions{mem},
		Resumes:    &memoryResumes{mem},
	}
}

// AutoMigrate 同步 gorm 模型的表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.SolvedQuestion{},
		&model.Activity{},
		&model.InterviewSession{},
		&model.Question{},
		&model.Resume{},
	)
}
