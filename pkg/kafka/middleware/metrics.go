package kafka_middleware

import (
	"context"
	"time"

	"wardrobe/pkg/kafka"
)

type PublishRecorder interface {
	EventPublished(topic string, err error, took time.Duration)
}

// MetricsProducerMiddleware reports publish outcomes and latency to rec.
func MetricsProducerMiddleware(rec PublishRecorder) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		rec.EventPublished(msg.Topic, err, time.Since(start))
		return err
	}
}
