package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/friendr/quiz-session/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "ENVIRONMENT", "MATCH_BACKEND_URL", "SIMULATE_SUBMISSIONS", "SIMULATED_DELAY",
	"SUBMIT_TIMEOUT", "SESSION_TTL", "ALLOWED_ORIGINS", "SUBMIT_RATE_PER_MINUTE", "SUBMIT_BURST",
	"EVENTS_ENABLED", "EVENTS_PUBLISHER", "KAFKA_BROKERS", "NOTIFICATION_TOPIC",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:8000", cfg.MatchBackendURL)
	assert.True(t, cfg.SimulateSubmissions)
	assert.Equal(t, 2*time.Second, cfg.SimulatedDelay)
	assert.Equal(t, 15*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:8000"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.SubmitRatePerMinute)
	assert.Equal(t, 5, cfg.SubmitBurst)

	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "kafka", cfg.Events.Publisher)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.GetKafkaBrokers())
	assert.Equal(t, "quiz_notifications", cfg.Events.NotificationTopic)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MATCH_BACKEND_URL", "https://match.friendr.example")
	t.Setenv("SIMULATE_SUBMISSIONS", "false")
	t.Setenv("SUBMIT_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SUBMIT_RATE_PER_MINUTE", "30")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://match.friendr.example", cfg.MatchBackendURL)
	assert.False(t, cfg.SimulateSubmissions)
	assert.Equal(t, 5*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 30, cfg.SubmitRatePerMinute)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIMULATED_DELAY", "soon")
	t.Setenv("SIMULATE_SUBMISSIONS", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.SimulatedDelay)
	assert.True(t, cfg.SimulateSubmissions)
}

func TestLoadConfig_RejectsNonPositiveRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBMIT_BURST", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		config   EventConfig
		expected events.EventPublisher
	}{
		{name: "disabled", config: EventConfig{Enabled: false, Publisher: "kafka"}, expected: &events.NoopEventPublisher{}},
		{name: "mock", config: EventConfig{Enabled: true, Publisher: "mock"}, expected: &events.MockEventPublisher{}},
		{name: "unknown", config: EventConfig{Enabled: true, Publisher: "carrier-pigeon"}, expected: &events.NoopEventPublisher{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := tt.config.CreateEventPublisher(logger)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, publisher)
			assert.NoError(t, publisher.Close())
		})
	}
}

func TestEventConfig_NotifierFactory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("disabled attaches nothing", func(t *testing.T) {
		cfg := EventConfig{Enabled: false, Publisher: "kafka"}
		publisher, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)

		assert.Nil(t, cfg.NotifierFactory(publisher, logger))
	})

	t.Run("enabled without a working publisher attaches nothing", func(t *testing.T) {
		cfg := EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
		publisher, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)

		assert.Nil(t, cfg.NotifierFactory(publisher, logger))
	})

	t.Run("enabled forwards session events", func(t *testing.T) {
		cfg := EventConfig{Enabled: true, Publisher: "mock"}
		publisher := events.NewMockEventPublisher(logger)

		factory := cfg.NotifierFactory(publisher, logger)
		require.NotNil(t, factory)

		factory("session-1").ShowProgress()
		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, "session-1", published[0].SessionID)
	})
}
