package model

import "time"

// Activity 每个用户每天一条的活动计数，(user_id, date) 唯一
// swagger:model Activity
type Activity struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex:idx_activity_user_date" json:"user"`
	Date                time.Time `gorm:"type:date;not null;uniqueIndex:idx_activity_user_date" json:"date"`
	QuestionsSolved     int       `gorm:"not null;default:0" json:"questionsSolved"`
	InterviewsCompleted int       `gorm:"not null;default:0" json:"interviewsCompleted"`
	ResumesCreated      int       `gorm:"not null;default:0" json:"resumesCreated"`
	CoinsEarned         int       `gorm:"not null;default:0" json:"coinsEarned"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (Activity) TableName() string {
	return "activities"
}

// ActivityDelta 一次活动的增量，未给出的字段视为 +0
type ActivityDelta struct {
	QuestionsSolved     int `json:"questionsSolved"`
	InterviewsCompleted int `json:"interviewsCompleted"`
	ResumesCreated      int `json:"resumesCreated"`
	CoinsEarned         int `json:"coinsEarned"`
}

func (d ActivityDelta) IsZero() bool {
	return d == ActivityDelta{}
}
