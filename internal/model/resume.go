package model

import "time"

// Resume 用户在简历生成器中创建的简历记录
type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	FullName  string    `gorm:"size:255" json:"fullName"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Resume) TableName() string {
	return "resumes"
}
