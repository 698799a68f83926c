// Package handlers implements the command handlers. Every handler follows the
// same path: load the graph under its lock, mutate it through the aggregate,
// save, mark the stored analysis out of date and publish the domain events.
package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"causalmap/application/commands/bus"
	"causalmap/application/ports"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/valueobjects"
)

// graphMutator holds what every command handler needs.
type graphMutator struct {
	graphs    ports.GraphRepository
	snapshots ports.AnalysisStore
	publisher ports.EventPublisher
	logger    *zap.Logger
}

func newGraphMutator(graphs ports.GraphRepository, snapshots ports.AnalysisStore, publisher ports.EventPublisher, logger *zap.Logger) graphMutator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return graphMutator{graphs: graphs, snapshots: snapshots, publisher: publisher, logger: logger}
}

// mutate applies fn to the graph and commits the result.
func (m graphMutator) mutate(ctx context.Context, graphID string, fn func(*aggregates.Graph) error) error {
	id, err := valueobjects.GraphIDFrom(graphID)
	if err != nil {
		return err
	}

	graph, err := m.graphs.Mutate(ctx, id, fn)
	if err != nil {
		return err
	}

	if err := m.snapshots.Invalidate(ctx, id); err != nil {
		m.logger.Warn("Failed to invalidate analysis snapshot",
			zap.String("graphID", id.String()),
			zap.Error(err),
		)
	}

	m.publish(ctx, graph)
	return nil
}

// publish hands the pending events to the publisher. A failed publish is
// logged and never undoes the mutation.
func (m graphMutator) publish(ctx context.Context, graph *aggregates.Graph) {
	pending := graph.GetUncommittedEvents()
	if len(pending) == 0 || m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, pending...); err != nil {
		m.logger.Warn("Failed to publish domain events",
			zap.String("graphID", graph.ID().String()),
			zap.Int("count", len(pending)),
			zap.Error(err),
		)
		return
	}
	graph.MarkEventsAsCommitted()
}

// typed adapts a handler for one concrete command type to bus.CommandHandler.
func typed[C bus.Command](handle func(context.Context, C) error) bus.CommandHandler {
	return bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(C)
		if !ok {
			var want C
			return fmt.Errorf("invalid command type: got %T, want %T", cmd, want)
		}
		return handle(ctx, c)
	})
}
