package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnsphere/assessment-engine/internal/models"
)

type EventType string

const (
	SessionStarted   EventType = "session.started"
	SessionCompleted EventType = "session.completed"
	SessionRetaken   EventType = "session.retaken"
)

const eventSource = "assessment-engine"

// SessionEvent is published on session lifecycle transitions. Completion
// carries either the scored aggregate or the flashcard tally, matching the
// session's mode; the other payload stays nil.
type SessionEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	SessionID     string    `json:"session_id"`
	QuestionSetID string    `json:"question_set_id"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	Version       string    `json:"version"`

	Aggregate  *models.AggregateResult `json:"aggregate,omitempty"`
	Flashcards *models.FlashcardTally  `json:"flashcards,omitempty"`
}

func newSessionEvent(eventType EventType, sessionID, questionSetID string) *SessionEvent {
	return &SessionEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		SessionID:     sessionID,
		QuestionSetID: questionSetID,
		Timestamp:     time.Now().UTC(),
		Source:        eventSource,
		Version:       "1.0",
	}
}

// NewSessionStarted builds the event for a freshly created session.
func NewSessionStarted(sessionID, questionSetID string) *SessionEvent {
	return newSessionEvent(SessionStarted, sessionID, questionSetID)
}

// NewSessionRetaken builds the event for a session reset.
func NewSessionRetaken(sessionID, questionSetID string) *SessionEvent {
	return newSessionEvent(SessionRetaken, sessionID, questionSetID)
}

// NewQuizCompleted builds the completion event for a scored session.
func NewQuizCompleted(sessionID, questionSetID string, result models.AggregateResult) *SessionEvent {
	event := newSessionEvent(SessionCompleted, sessionID, questionSetID)
	event.Aggregate = &result
	return event
}

// NewFlashcardsCompleted builds the completion event for a flashcard session.
func NewFlashcardsCompleted(sessionID, questionSetID string, tally models.FlashcardTally) *SessionEvent {
	event := newSessionEvent(SessionCompleted, sessionID, questionSetID)
	event.Flashcards = &tally
	return event
}
