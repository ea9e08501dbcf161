package model

import (
	"time"

	"gorm.io/datatypes"
)

// 难度分桶，键名固定为 easy/medium/hard
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DifficultyCounts 按难度统计的已解题数
type DifficultyCounts struct {
	Easy   int `gorm:"default:0" json:"easy"`
	Medium int `gorm:"default:0" json:"medium"`
	Hard   int `gorm:"default:0" json:"hard"`
}

// Stats 嵌入在 User 中的聚合统计，不单独持久化
// swagger:model Stats
type Stats struct {
	TotalQuestionsSolved  int              `gorm:"default:0" json:"totalQuestionsSolved"`
	QuestionsByDifficulty DifficultyCounts `gorm:"embedded;embeddedPrefix:by_difficulty_" json:"questionsByDifficulty"`
	InterviewsCompleted   int              `gorm:"default:0" json:"interviewsCompleted"`
	AverageInterviewScore float64          `gorm:"default:0" json:"averageInterviewScore"`
	ResumesCreated        int              `gorm:"default:0" json:"resumesCreated"`
}

type SocialLinks struct {
	GitHub    string `gorm:"column:github;size:255" json:"github"`
	LinkedIn  string `gorm:"column:linkedin;size:255" json:"linkedin"`
	Portfolio string `gorm:"column:portfolio;size:255" json:"portfolio"`
}

// swagger:model User
type User struct {
	BaseModel
	Username        string                      `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email           string                      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password        string                      `gorm:"size:100;not null" json:"-"`
	Coins           int                         `gorm:"default:0" json:"coins"`
	Streak          int                         `gorm:"default:0" json:"streak"`
	LastActive      *time.Time                  `json:"lastActive"`
	Stats           Stats                       `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Bio             string                      `gorm:"size:1000" json:"bio"`
	CurrentPosition string                      `gorm:"size:255" json:"currentPosition"`
	Location        string                      `gorm:"size:255" json:"location"`
	Skills          datatypes.JSONSlice[string] `json:"skills"`
	Avatar          string                      `gorm:"size:512" json:"avatar"`
	Banner          string                      `gorm:"size:512" json:"banner"`
	Resume          string                      `gorm:"size:512" json:"resume"`
	SocialLinks     SocialLinks                 `gorm:"embedded;embeddedPrefix:social_" json:"socialLinks"`
	Badges          datatypes.JSONSlice[string] `json:"badges"`
}

func (User) TableName() string {
	return "users"
}

// SolvedQuestion 记录用户已解答的题目，(user_id, question_id) 唯一
type SolvedQuestion struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_question"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_user_question"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (SolvedQuestion) TableName() string {
	return "user_solved_questions"
}
