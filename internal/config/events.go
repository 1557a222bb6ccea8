package config

import (
	"log/slog"
	"strings"

	"github.com/friendr/quiz-session/internal/events"
	"github.com/friendr/quiz-session/internal/services"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled           bool
	Publisher         string // kafka or mock
	KafkaBrokers      string
	NotificationTopic string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled")
		return events.NewNoopEventPublisher(), nil
	}

	switch strings.ToLower(c.Publisher) {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.NotificationTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.NotificationTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, dropping events", "publisher", c.Publisher)
		return events.NewNoopEventPublisher(), nil
	}
}

// NotifierFactory attaches an event notifier to each new session, or returns
// nil when publishing is disabled so sessions only feed their page.
func (c *EventConfig) NotifierFactory(publisher events.EventPublisher, logger *slog.Logger) services.NotifierFactory {
	if !c.Enabled {
		return nil
	}
	if _, noop := publisher.(*events.NoopEventPublisher); noop {
		return nil
	}
	return func(sessionID string) services.Notifier {
		return events.NewEventNotifier(sessionID, publisher, logger)
	}
}
