// Package messaging holds the broker-facing adapters: the Kafka event
// publisher, the attendance consumer that triggers scoring, and the
// Redis live alert notifier.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/event"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/kafka"
)

// KafkaPublisher implements port.EventPublisher using Kafka. Attendance
// events go to their own topic so the scoring consumer sees only those;
// everything else goes to the risk topic.
type KafkaPublisher struct {
	producer        *kafka.Producer
	attendanceTopic string
	riskTopic       string
	logger          *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer *kafka.Producer, attendanceTopic, riskTopic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer:        producer,
		attendanceTopic: attendanceTopic,
		riskTopic:       riskTopic,
		logger:          logger,
	}
}

// Publish sends each domain event, wrapped in its transport envelope,
// keyed on the aggregate id so per-aggregate ordering is preserved.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		value, err := json.Marshal(events.NewEnvelope(evt))
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		msg := kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: value,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		}

		topic := p.topicFor(evt.EventType())
		if err := p.producer.Publish(ctx, topic, msg); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", evt.EventType(), err)
		}

		p.logger.Debug("event published",
			slog.String("event_type", evt.EventType()),
			slog.String("topic", topic),
			slog.String("aggregate_id", evt.AggregateID().String()))
	}
	return nil
}

func (p *KafkaPublisher) topicFor(eventType string) string {
	if eventType == event.EventTypeAttendanceRecorded {
		return p.attendanceTopic
	}
	return p.riskTopic
}
