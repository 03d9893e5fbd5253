package event

import (
	"context"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct {
	log *zap.Logger
}

func NewNopPublisher(log *zap.Logger) *NopPublisher {
	return &NopPublisher{log: log.With(zap.String("publisher", "nop"))}
}

func (p *NopPublisher) Publish(ctx context.Context, env Envelope) error {
	p.log.Debug("Event dropped",
		zap.String("event_type", env.EventType),
		zap.String("correlation_id", env.CorrelationID),
	)
	return nil
}

func (p *NopPublisher) Close() error { return nil }
