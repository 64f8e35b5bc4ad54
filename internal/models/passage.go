package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question is a single multiple-choice question attached to a passage.
// JSON field names match the shape stored by the generation service, so
// previously persisted passages unmarshal without migration.
type Question struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
	Explanation   string   `json:"explanation"`
}

// GenerationMetadata records the sampled generation brief used to produce a
// passage. It exists for pattern analysis and deduplication only and never
// influences scoring.
type GenerationMetadata struct {
	Topic           string `json:"topic"`
	Style           string `json:"style"`
	Perspective     string `json:"perspective"`
	QuestionFocus   string `json:"questionFocus"`
	Tone            string `json:"tone"`
	DifficultyLevel int    `json:"difficultyLevel"`
}

// ReadingPassage is a generated English reading-comprehension passage with
// its Korean translation, study notes and quiz questions.
type ReadingPassage struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Title           string `json:"title" gorm:"not null;size:300" validate:"required"`
	Content         string `json:"content" gorm:"type:text;not null" validate:"required"`
	DifficultyLevel int    `json:"difficulty_level" gorm:"not null;index" validate:"required,difficulty_level"`
	Translation     string `json:"translation" gorm:"type:text"`

	KeyVocabulary datatypes.JSONSlice[string]   `json:"key_vocabulary" gorm:"type:jsonb"`
	GrammarPoints datatypes.JSONSlice[string]   `json:"grammar_points" gorm:"type:jsonb"`
	Questions     datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`

	GenerationMetadata *datatypes.JSONType[GenerationMetadata] `json:"generation_metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (ReadingPassage) TableName() string {
	return "reading_passages"
}
