package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// Matching backend
	MatchBackendURL     string
	SimulateSubmissions bool
	SimulatedDelay      time.Duration
	SubmitTimeout       time.Duration

	// Sessions and HTTP surface
	SessionTTL          time.Duration
	AllowedOrigins      []string
	SubmitRatePerMinute int
	SubmitBurst         int

	Events EventConfig
}

// LoadConfig reads .env when present and falls back to defaults for every
// unset key.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		MatchBackendURL:     getEnv("MATCH_BACKEND_URL", "http://localhost:8000"),
		SimulateSubmissions: getEnvBool("SIMULATE_SUBMISSIONS", true),
		SimulatedDelay:      getEnvDuration("SIMULATED_DELAY", 2*time.Second),
		SubmitTimeout:       getEnvDuration("SUBMIT_TIMEOUT", 15*time.Second),
		SessionTTL:          getEnvDuration("SESSION_TTL", 30*time.Minute),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8000")),
		SubmitRatePerMinute: getEnvInt("SUBMIT_RATE_PER_MINUTE", 10),
		SubmitBurst:         getEnvInt("SUBMIT_BURST", 5),
		Events: EventConfig{
			Enabled:           getEnvBool("EVENTS_ENABLED", false),
			Publisher:         getEnv("EVENTS_PUBLISHER", "kafka"),
			KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
			NotificationTopic: getEnv("NOTIFICATION_TOPIC", "quiz_notifications"),
		},
	}

	if cfg.SubmitRatePerMinute <= 0 || cfg.SubmitBurst <= 0 {
		return nil, fmt.Errorf("submit rate and burst must be positive")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
