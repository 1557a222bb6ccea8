package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/friendr/quiz-session/internal/validator"
	"github.com/google/uuid"
)

// NotifierFactory builds the extra notifiers attached to a new session, such
// as an event publisher tagged with the session ID.
type NotifierFactory func(sessionID string) Notifier

// SessionEntry is a live quiz session plus the feed its page reads.
type SessionEntry struct {
	Session *QuizSession
	Feed    *NotificationFeed

	lastSeen time.Time
}

// SessionManager keeps one quiz session per page view in memory. Idle
// sessions are dropped after ttl.
type SessionManager struct {
	client    MatchClient
	validator *validator.Validator
	logger    *slog.Logger
	notifiers NotifierFactory
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*SessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(client MatchClient, validator *validator.Validator, logger *slog.Logger, notifiers NotifierFactory, ttl time.Duration) *SessionManager {
	m := &SessionManager{
		client:    client,
		validator: validator,
		logger:    logger,
		notifiers: notifiers,
		ttl:       ttl,
		sessions:  make(map[string]*SessionEntry),
		stop:      make(chan struct{}),
	}
	go m.cleanupSessions(time.Minute)
	return m
}

func (m *SessionManager) Create() *SessionEntry {
	id := uuid.NewString()
	feed := NewNotificationFeed()

	var notifier Notifier = feed
	if m.notifiers != nil {
		notifier = Notifiers(feed, m.notifiers(id))
	}

	entry := &SessionEntry{
		Session:  NewQuizSession(id, m.client, notifier, m.validator, m.logger),
		Feed:     feed,
		lastSeen: time.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = entry
	m.mu.Unlock()

	m.logger.Info("Quiz session created", "session_id", id)
	return entry
}

func (m *SessionManager) Get(id string) (*SessionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = time.Now()
	return entry, nil
}

// Delete closes the session and forgets it.
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	entry.Session.Close()
	m.logger.Info("Quiz session closed", "session_id", id)
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stop ends the background cleanup and closes every session.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)

		m.mu.Lock()
		entries := m.sessions
		m.sessions = make(map[string]*SessionEntry)
		m.mu.Unlock()

		for _, entry := range entries {
			entry.Session.Close()
		}
	})
}

func (m *SessionManager) cleanupSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *SessionManager) evictIdle(now time.Time) int {
	m.mu.Lock()
	var expired []*SessionEntry
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.ttl && !entry.Session.InFlight() {
			expired = append(expired, entry)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, entry := range expired {
		entry.Session.Close()
	}
	if len(expired) > 0 {
		m.logger.Info("Evicted idle quiz sessions", "count", len(expired))
	}
	return len(expired)
}
