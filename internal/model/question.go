package model

import "gorm.io/datatypes"

type QuestionCategory string

const (
	CategoryCoding     QuestionCategory = "Coding"
	CategoryAptitude   QuestionCategory = "Aptitude"
	CategoryBehavioral QuestionCategory = "Behavioral"
)

type TestCase struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question 题库中的编程/能力/行为题
// swagger:model Question
type Question struct {
	BaseModel
	Title       string                        `gorm:"size:255;not null" json:"title"`
	Description string                        `gorm:"type:text;not null" json:"description"`
	Category    QuestionCategory              `gorm:"size:20;index;not null" json:"category"`
	Difficulty  string                        `gorm:"size:10;index;default:'Medium'" json:"difficulty"`
	Points      int                           `gorm:"default:10" json:"points"`
	Link        string                        `gorm:"size:255" json:"link"`
	Companies   datatypes.JSONSlice[string]   `json:"companies"`
	TestCases   datatypes.JSONSlice[TestCase] `json:"testCases,omitempty"`
	StarterCode string                        `gorm:"type:text" json:"starterCode,omitempty"`
	Options     datatypes.JSONSlice[Option]   `json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
