package models

import (
	"time"

	"gorm.io/datatypes"
)

// TestResult is one learner's answers for one passage snapshot. Results are
// written once after the final question is answered and never updated or
// deleted.
type TestResult struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"not null;index" validate:"required"`
	PassageID uint   `json:"passage_id" gorm:"not null;index" validate:"required"`

	Score           int                      `json:"score" gorm:"not null" validate:"min=0,max=100"`
	Answers         datatypes.JSONSlice[int] `json:"answers" gorm:"type:jsonb"`
	DifficultyLevel int                      `json:"difficulty_level" gorm:"not null" validate:"required,difficulty_level"`

	CompletedAt time.Time `json:"completed_at" gorm:"not null;index"`
}

func (TestResult) TableName() string {
	return "test_results"
}
