package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/vuhoang/dev-connector/adapters/event"
	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

// EventPublisher is satisfied by event.KafkaProducerClient.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}

// Events are best-effort: a broker fault never fails the request.
func publishEvent(log logger.Logger, events EventPublisher, payload event.ProfileEventPayload) {
	if events == nil {
		return
	}
	go func() {
		if err := events.PublishProfileEvent(context.Background(), payload); err != nil {
			log.Error("Failed to publish profile event", err,
				zap.String("owner_id", payload.OwnerID.String()),
				zap.String("event_type", string(payload.EventType)))
		}
	}()
}

func invalidateCache(ctx context.Context, cache profile.Cache, log logger.Logger, handle string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, handle); err != nil {
		log.Warn("Failed to invalidate profile cache", zap.String("handle", handle), zap.Error(err))
	}
}
