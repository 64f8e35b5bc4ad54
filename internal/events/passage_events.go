package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventPassageGenerated EventType = "passage.generated"
	EventResultRecorded   EventType = "result.recorded"
)

const eventSource = "passage-service"

// Event is the envelope for all domain events published by this service.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	PassageGenerated *PassageGeneratedPayload `json:"passage_generated,omitempty"`
	ResultRecorded   *ResultRecordedPayload   `json:"result_recorded,omitempty"`
}

// PassageGeneratedPayload describes a newly generated and stored passage.
type PassageGeneratedPayload struct {
	PassageID       uint   `json:"passage_id"`
	Title           string `json:"title"`
	DifficultyLevel int    `json:"difficulty_level"`
	QuestionCount   int    `json:"question_count"`
	Topic           string `json:"topic,omitempty"`
}

// ResultRecordedPayload describes a persisted test result.
type ResultRecordedPayload struct {
	ResultID        uint   `json:"result_id"`
	UserID          string `json:"user_id"`
	PassageID       uint   `json:"passage_id"`
	Score           int    `json:"score"`
	DifficultyLevel int    `json:"difficulty_level"`
}

func NewPassageGeneratedEvent(payload PassageGeneratedPayload) *Event {
	return &Event{
		ID:               uuid.NewString(),
		Type:             EventPassageGenerated,
		Source:           eventSource,
		Timestamp:        time.Now().UTC(),
		PassageGenerated: &payload,
	}
}

func NewResultRecordedEvent(payload ResultRecordedPayload) *Event {
	return &Event{
		ID:             uuid.NewString(),
		Type:           EventResultRecorded,
		Source:         eventSource,
		Timestamp:      time.Now().UTC(),
		ResultRecorded: &payload,
	}
}
