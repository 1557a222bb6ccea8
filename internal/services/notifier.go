package services

import (
	"sync"
	"time"

	"github.com/friendr/quiz-session/internal/models"
)

// Notifier is the rendering side of a quiz session. Implementations must be
// safe for concurrent use; sessions never call them while holding a lock.
type Notifier interface {
	Notify(message string, kind models.NotificationKind, duration time.Duration)
	ShowProgress()
	HideProgress()
	HighlightField(field models.AnswerField)
}

type multiNotifier []Notifier

// Notifiers fans every call out to each of the given notifiers in order.
func Notifiers(notifiers ...Notifier) Notifier {
	out := make(multiNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multiNotifier) Notify(message string, kind models.NotificationKind, duration time.Duration) {
	for _, n := range m {
		n.Notify(message, kind, duration)
	}
}

func (m multiNotifier) ShowProgress() {
	for _, n := range m {
		n.ShowProgress()
	}
}

func (m multiNotifier) HideProgress() {
	for _, n := range m {
		n.HideProgress()
	}
}

func (m multiNotifier) HighlightField(field models.AnswerField) {
	for _, n := range m {
		n.HighlightField(field)
	}
}

// FeedSnapshot is the indicator state a page needs to render.
type FeedSnapshot struct {
	ProgressVisible  bool               `json:"progress_visible"`
	HighlightedField models.AnswerField `json:"highlighted_field,omitempty"`
}

// NotificationFeed keeps notifications until the page collects them.
type NotificationFeed struct {
	mu            sync.Mutex
	notifications []models.Notification
	snapshot      FeedSnapshot
}

func NewNotificationFeed() *NotificationFeed {
	return &NotificationFeed{}
}

func (f *NotificationFeed) Notify(message string, kind models.NotificationKind, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, models.NewNotification(kind, message, duration))
}

func (f *NotificationFeed) ShowProgress() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot.ProgressVisible = true
}

func (f *NotificationFeed) HideProgress() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot.ProgressVisible = false
}

func (f *NotificationFeed) HighlightField(field models.AnswerField) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot.HighlightedField = field
}

// Drain returns pending notifications and clears them, along with the
// highlighted field which is shown once.
func (f *NotificationFeed) Drain() ([]models.Notification, FeedSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pending := f.notifications
	f.notifications = nil
	snapshot := f.snapshot
	f.snapshot.HighlightedField = ""

	if pending == nil {
		pending = []models.Notification{}
	}
	return pending, snapshot
}

func (f *NotificationFeed) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}
