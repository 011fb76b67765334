// Package messaging publishes recommendation activity events to Kafka
// for downstream analytics. Publishing is best effort: a broker failure
// is logged and never fails the originating request.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
)

const (
	EventRecommendationServed = "recommendation-served"
	EventRouteEstimated       = "route-estimated"
)

// RecommendationServedEvent records one served recommendation list.
type RecommendationServedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	UserID      *int64    `json:"user_id,omitempty"`
	ResultCount int       `json:"result_count"`
	ResolvedLat float64   `json:"resolved_lat"`
	ResolvedLon float64   `json:"resolved_lon"`
	Matched     bool      `json:"matched"`
	ServedAt    time.Time `json:"served_at"`
}

// RouteEstimatedEvent records one route-estimate response, including
// which legs degraded.
type RouteEstimatedEvent struct {
	EventID          uuid.UUID `json:"event_id"`
	AccommodationID  int64     `json:"accommodation_id"`
	TransitAvailable bool      `json:"transit_available"`
	DrivingAvailable bool      `json:"driving_available"`
	EstimatedAt      time.Time `json:"estimated_at"`
}

type envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// EventPublisher writes activity events to a single topic, keyed by
// event type so consumers can partition by flow.
type EventPublisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewEventPublisher(cfg *config.Config, logger *logrus.Logger) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topics.RecommendationEvents,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		logger: logger,
	}
}

// PublishRecommendationServed emits a recommendation-served event.
func (p *EventPublisher) PublishRecommendationServed(ctx context.Context, event RecommendationServedEvent) error {
	return p.publish(ctx, EventRecommendationServed, event)
}

// PublishRouteEstimated emits a route-estimated event.
func (p *EventPublisher) PublishRouteEstimated(ctx context.Context, event RouteEstimatedEvent) error {
	return p.publish(ctx, EventRouteEstimated, event)
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	value, err := json.Marshal(envelope{
		Type:      eventType,
		Payload:   raw,
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.WithFields(logrus.Fields{
		"event_type": eventType,
	}).Debug("Published recommendation event")

	return nil
}

func (p *EventPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}
	return nil
}
