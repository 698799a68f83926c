package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"causalmap/domain/core/valueobjects"
	"causalmap/domain/events"
	"causalmap/pkg/observability"
)

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, ...events.DomainEvent) error { return f.err }

func sampleEvent() events.DomainEvent {
	return events.NewGraphCreated(valueobjects.NewGraphID(), "Test", time.Now())
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.Publish(context.Background(), sampleEvent(), sampleEvent()))
	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, events.TypeGraphCreated, entries[0].ContextMap()["eventType"])
}

func TestMultiPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	boom := errors.New("boom")
	m := MultiPublisher{failingPublisher{err: boom}, NewLogPublisher(zap.New(core))}

	err := m.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, logs.Len(), "later publishers still run")
}

func TestInstrumentedPublisher(t *testing.T) {
	metrics := observability.NewCollector("causalmap_test")

	ok := NewInstrumentedPublisher(NewLogPublisher(zap.NewNop()), metrics)
	require.NoError(t, ok.Publish(context.Background(), sampleEvent(), sampleEvent()))

	bad := NewInstrumentedPublisher(failingPublisher{err: errors.New("down")}, metrics)
	assert.Error(t, bad.Publish(context.Background(), sampleEvent()))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("error")))
}
