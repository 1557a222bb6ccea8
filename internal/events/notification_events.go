package events

import (
	"time"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/google/uuid"
)

// EventType represents different types of quiz session events
type EventType string

const (
	EventNotification     EventType = "quiz.notification"
	EventProgressShown    EventType = "quiz.progress_shown"
	EventProgressHidden   EventType = "quiz.progress_hidden"
	EventFieldHighlighted EventType = "quiz.field_highlighted"
)

const (
	eventSource  = "quiz-session"
	eventVersion = "1.0"
)

// NotificationEvent is the envelope for every quiz session event
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type NotificationShownEvent struct {
	Kind       models.NotificationKind `json:"kind"`
	Message    string                  `json:"message"`
	DurationMS int64                   `json:"duration_ms"`
}

type FieldHighlightedEvent struct {
	Field models.AnswerField `json:"field"`
}

// Event factory functions

func NewNotificationShownEvent(sessionID string, notification models.Notification) *NotificationEvent {
	return newEvent(EventNotification, sessionID, NotificationShownEvent{
		Kind:       notification.Kind,
		Message:    notification.Message,
		DurationMS: notification.DurationMS,
	})
}

func NewProgressEvent(sessionID string, visible bool) *NotificationEvent {
	eventType := EventProgressHidden
	if visible {
		eventType = EventProgressShown
	}
	return newEvent(eventType, sessionID, nil)
}

func NewFieldHighlightedEvent(sessionID string, field models.AnswerField) *NotificationEvent {
	return newEvent(EventFieldHighlighted, sessionID, FieldHighlightedEvent{Field: field})
}

func newEvent(eventType EventType, sessionID string, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a unique event ID
func GenerateEventID() string {
	return uuid.NewString()
}
