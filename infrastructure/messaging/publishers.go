// Package messaging holds the event publishers that do not need a broker.
package messaging

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"causalmap/application/ports"
	"causalmap/domain/events"
	"causalmap/pkg/observability"
)

// LogPublisher writes every event to the log. It is used when no event bus
// is configured.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a new log publisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the events
func (p *LogPublisher) Publish(_ context.Context, batch ...events.DomainEvent) error {
	for _, e := range batch {
		p.logger.Info("Domain event",
			zap.String("eventType", e.GetEventType()),
			zap.String("graphID", e.GetAggregateID()),
			zap.Int("version", e.GetVersion()),
			zap.Time("timestamp", e.GetTimestamp()),
		)
	}
	return nil
}

// MultiPublisher publishes to several publishers in order. Every publisher is
// tried and the errors are joined.
type MultiPublisher []ports.EventPublisher

// Publish publishes to each publisher
func (m MultiPublisher) Publish(ctx context.Context, batch ...events.DomainEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, batch...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InstrumentedPublisher counts published events.
type InstrumentedPublisher struct {
	next    ports.EventPublisher
	metrics *observability.Collector
}

// NewInstrumentedPublisher wraps next with metrics
func NewInstrumentedPublisher(next ports.EventPublisher, metrics *observability.Collector) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, metrics: metrics}
}

// Publish forwards the events and records the outcome
func (p *InstrumentedPublisher) Publish(ctx context.Context, batch ...events.DomainEvent) error {
	err := p.next.Publish(ctx, batch...)
	p.metrics.ObserveEvents(len(batch), err)
	return err
}
