package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewConsumer consumes view events from NATS JetStream and maintains the
// per-asset live view counters in Redis.
type ViewConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	redis  *redis.Client
}

// NewViewConsumer creates a new view event consumer
func NewViewConsumer(js nats.JetStreamContext, logger *zap.Logger, redisClient *redis.Client) *ViewConsumer {
	return &ViewConsumer{js: js, logger: logger, redis: redisClient}
}

// Start begins consuming view events
func (c *ViewConsumer) Start() error {
	// Create stream if not exists
	_, err := c.js.StreamInfo(model.ViewStreamName)
	if err != nil {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name:     model.ViewStreamName,
			Subjects: []string{model.ViewStreamSubject},
			MaxBytes: model.ViewStreamMaxBytes,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
	}

	// Create consumer if not exists
	_, err = c.js.ConsumerInfo(model.ViewStreamName, model.ViewConsumerName)
	if err != nil {
		_, err = c.js.AddConsumer(model.ViewStreamName, &nats.ConsumerConfig{
			Durable:   model.ViewConsumerName,
			AckPolicy: nats.AckExplicitPolicy,
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	// Subscribe to consume messages
	sub, err := c.js.PullSubscribe(model.ViewStreamSubject, model.ViewConsumerName)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	go c.consume(sub)
	return nil
}

func (c *ViewConsumer) consume(sub *nats.Subscription) {
	ctx := context.Background()
	for {
		msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
		if err != nil && err != nats.ErrTimeout {
			c.logger.Error("failed to fetch messages", zap.Error(err))
			continue
		}

		for _, msg := range msgs {
			var event model.ViewEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				c.logger.Error("failed to unmarshal view event", zap.Error(err))
				msg.Nak()
				continue
			}

			if err := c.redis.Incr(ctx, LiveViewKey(event.AssetID)).Err(); err != nil {
				c.logger.Error("failed to bump live view counter",
					zap.String("id", event.ID),
					zap.Uint("asset_id", event.AssetID),
					zap.Error(err))
				msg.Nak()
				continue
			}

			c.logger.Debug("view event counted",
				zap.String("id", event.ID),
				zap.Uint("asset_id", event.AssetID),
				zap.String("source_ip", event.SourceIP),
				zap.Time("occurred_at", event.OccurredAt),
			)

			msg.Ack()
		}
	}
}
