package ports

import (
	"context"

	"causalmap/domain/analysis"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/valueobjects"
	"causalmap/domain/events"
)

// GraphRepository defines the interface for graph persistence.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation.
// Graphs owned by another user than the one in the context are reported as not found.
type GraphRepository interface {
	// Create stores a new graph. An existing id yields a CONFLICT error.
	Create(ctx context.Context, graph *aggregates.Graph) error

	// Save persists a graph (create or update)
	Save(ctx context.Context, graph *aggregates.Graph) error

	// GetByID retrieves a copy of a graph. Unknown ids yield a NOT_FOUND error.
	GetByID(ctx context.Context, id valueobjects.GraphID) (*aggregates.Graph, error)

	// List returns copies of all graphs in creation order
	List(ctx context.Context) ([]*aggregates.Graph, error)

	// Delete removes a graph
	Delete(ctx context.Context, id valueobjects.GraphID) error

	// Mutate loads a graph under its lock, hands it to fn and saves it when fn
	// succeeds. The saved graph, events still pending, is returned.
	Mutate(ctx context.Context, id valueobjects.GraphID, fn func(*aggregates.Graph) error) (*aggregates.Graph, error)
}

// AnalysisStore keeps the latest analysis snapshot of each graph.
type AnalysisStore interface {
	// Get returns the stored snapshot and whether it is still current. An
	// invalidated snapshot is kept so its checksum can be compared.
	Get(ctx context.Context, graphID valueobjects.GraphID) (snapshot *analysis.Snapshot, current bool, err error)

	// Put stores a snapshot as current
	Put(ctx context.Context, graphID valueobjects.GraphID, snapshot *analysis.Snapshot) error

	// Invalidate marks the stored snapshot as out of date
	Invalidate(ctx context.Context, graphID valueobjects.GraphID) error

	// Delete drops the stored snapshot
	Delete(ctx context.Context, graphID valueobjects.GraphID) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, batch ...events.DomainEvent) error
}
