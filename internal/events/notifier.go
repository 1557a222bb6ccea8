package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/friendr/quiz-session/internal/models"
)

const publishTimeout = 5 * time.Second

// EventNotifier forwards a session's notifications to the event bus so other
// services can follow quiz activity. Publish failures are logged, never
// returned to the session.
type EventNotifier struct {
	sessionID string
	publisher EventPublisher
	logger    *slog.Logger
}

func NewEventNotifier(sessionID string, publisher EventPublisher, logger *slog.Logger) *EventNotifier {
	return &EventNotifier{
		sessionID: sessionID,
		publisher: publisher,
		logger:    logger,
	}
}

func (n *EventNotifier) Notify(message string, kind models.NotificationKind, duration time.Duration) {
	n.publish(NewNotificationShownEvent(n.sessionID, models.NewNotification(kind, message, duration)))
}

func (n *EventNotifier) ShowProgress() {
	n.publish(NewProgressEvent(n.sessionID, true))
}

func (n *EventNotifier) HideProgress() {
	n.publish(NewProgressEvent(n.sessionID, false))
}

func (n *EventNotifier) HighlightField(field models.AnswerField) {
	n.publish(NewFieldHighlightedEvent(n.sessionID, field))
}

func (n *EventNotifier) publish(event *NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := n.publisher.PublishNotificationEvent(ctx, event); err != nil {
		n.logger.Warn("Failed to forward quiz event",
			"session_id", n.sessionID,
			"event_type", event.Type,
			"error", err)
	}
}
