package model

import (
	"time"

	"gorm.io/datatypes"
)

// 面试类型；实际存储为自由文本，这里列出常用取值
const (
	InterviewBehavioral = "behavioral"
	InterviewTechnical  = "technical"
	InterviewMixed      = "mixed"
	InterviewFrontend   = "frontend"
	InterviewBackend    = "backend"
)

// InterviewAnswer 单题问答记录，score 取值 1-5
type InterviewAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
}

// InterviewSession 一次完成的模拟面试，创建后不可修改
// swagger:model InterviewSession
type InterviewSession struct {
	ID           uint                                 `gorm:"primaryKey" json:"id"`
	UserID       uint                                 `gorm:"not null;index" json:"user"`
	Type         string                               `gorm:"size:50;default:'mixed'" json:"type"`
	Questions    datatypes.JSONSlice[InterviewAnswer] `json:"questions"`
	OverallScore float64                              `gorm:"default:0" json:"overallScore"`
	Feedback     string                               `gorm:"type:text" json:"feedback"`
	Duration     int                                  `gorm:"default:0" json:"duration"`
	CompletedAt  time.Time                            `gorm:"index" json:"completedAt"`
	CreatedAt    time.Time                            `json:"createdAt"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}
