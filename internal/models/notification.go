package models

import "time"

type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Display durations used by the quiz page.
const (
	DefaultNotificationDuration = 3 * time.Second
	SuccessNotificationDuration = 5 * time.Second
)

// Notification is a user-facing message produced by a quiz session.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Message    string           `json:"message"`
	Duration   time.Duration    `json:"-"`
	DurationMS int64            `json:"duration_ms"`
	CreatedAt  time.Time        `json:"created_at"`
}

func NewNotification(kind NotificationKind, message string, duration time.Duration) Notification {
	return Notification{
		Kind:       kind,
		Message:    message,
		Duration:   duration,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	}
}
