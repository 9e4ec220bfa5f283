package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/vuhoang/dev-connector/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
)

type ProfileEventType string

const (
	ProfileEventTypeUpserted          ProfileEventType = "upserted"
	ProfileEventTypeExperienceAdded   ProfileEventType = "experience_added"
	ProfileEventTypeExperienceRemoved ProfileEventType = "experience_removed"
	ProfileEventTypeEducationAdded    ProfileEventType = "education_added"
	ProfileEventTypeEducationRemoved  ProfileEventType = "education_removed"
	ProfileEventTypeDeleted           ProfileEventType = "deleted"
	ProfileEventTypeAccountDeleted    ProfileEventType = "account_deleted"
)

type ProfileEventPayload struct {
	EventType  ProfileEventType `json:"event_type"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	Handle     string           `json:"handle,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events'
	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal profile event: %w", err)
	}

	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
