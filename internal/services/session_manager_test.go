package services

import (
	"context"
	"testing"
	"time"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/friendr/quiz-session/internal/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, factory NotifierFactory, ttl time.Duration) *SessionManager {
	t.Helper()
	m := NewSessionManager(&MockMatchClient{}, validator.New(), testLogger(), factory, ttl)
	t.Cleanup(m.Stop)
	return m
}

func TestSessionManager_CreateGetDelete(t *testing.T) {
	m := newTestManager(t, nil, time.Hour)

	entry := m.Create()
	require.NotNil(t, entry.Session)
	require.NotNil(t, entry.Feed)
	_, err := uuid.Parse(entry.Session.ID())
	assert.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(entry.Session.ID())
	require.NoError(t, err)
	assert.Same(t, entry, got)

	require.NoError(t, m.Delete(entry.Session.ID()))
	assert.Equal(t, 0, m.Len())

	_, err = m.Get(entry.Session.ID())
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, m.Delete(entry.Session.ID()), ErrSessionNotFound)
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	m := newTestManager(t, nil, time.Hour)

	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.Session.ID(), b.Session.ID())

	require.NoError(t, a.Session.SelectAnswer(models.FieldDogIntroduction, "avoid"))
	assert.True(t, a.Session.IsAnswered(models.FieldDogIntroduction))
	assert.False(t, b.Session.IsAnswered(models.FieldDogIntroduction))
}

func TestSessionManager_FactoryNotifierReceivesEvents(t *testing.T) {
	extra := &MockNotifier{}
	var factoryID string
	m := newTestManager(t, func(sessionID string) Notifier {
		factoryID = sessionID
		return extra
	}, time.Hour)

	entry := m.Create()
	assert.Equal(t, entry.Session.ID(), factoryID)

	extra.On("Notify", "Quiz has been reset!", models.NotificationInfo, models.DefaultNotificationDuration).Once()
	entry.Session.Reset(true)

	extra.AssertExpectations(t)
	notifications, _ := entry.Feed.Drain()
	assert.Len(t, notifications, 1)
}

func TestSessionManager_EvictIdle(t *testing.T) {
	m := newTestManager(t, nil, time.Minute)

	stale := m.Create()
	fresh := m.Create()

	now := time.Now()
	m.mu.Lock()
	stale.lastSeen = now.Add(-2 * time.Minute)
	m.mu.Unlock()

	assert.Equal(t, 1, m.evictIdle(now))
	assert.Equal(t, 1, m.Len())

	_, err := m.Get(stale.Session.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh.Session.ID())
	assert.NoError(t, err)
}

func TestSessionManager_EvictIdleSkipsInFlight(t *testing.T) {
	client := newBlockingClient()
	m := NewSessionManager(client, validator.New(), testLogger(), nil, time.Minute)
	defer m.Stop()

	entry := m.Create()
	answerAll(t, entry.Session)

	done := make(chan error, 1)
	go func() {
		_, err := entry.Session.Submit(context.Background())
		done <- err
	}()
	waitStarted(t, client)

	m.mu.Lock()
	entry.lastSeen = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	assert.Equal(t, 0, m.evictIdle(time.Now()))
	assert.Equal(t, 1, m.Len())

	close(client.release)
	require.NoError(t, <-done)
}

func TestSessionManager_StopClosesSessions(t *testing.T) {
	client := newBlockingClient()
	m := NewSessionManager(client, validator.New(), testLogger(), nil, time.Hour)

	entry := m.Create()
	answerAll(t, entry.Session)

	done := make(chan error, 1)
	go func() {
		_, err := entry.Session.Submit(context.Background())
		done <- err
	}()
	waitStarted(t, client)

	m.Stop()
	m.Stop()

	assert.ErrorIs(t, <-done, ErrSubmissionDiscarded)
	assert.Equal(t, 0, m.Len())
}
