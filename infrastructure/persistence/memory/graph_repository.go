// Package memory provides in-process implementations of the persistence
// ports. Stored values are copied on the way in and out.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/valueobjects"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

// GraphRepository stores graphs in memory. Reads, deletes and mutations are
// scoped to the user in the context: another user's graph is reported as not
// found.
type GraphRepository struct {
	mu     sync.RWMutex
	graphs map[string]*aggregates.Graph
	order  []string
	locks  *keyedLock
	logger *zap.Logger
}

// NewGraphRepository creates an empty repository
func NewGraphRepository(logger *zap.Logger) *GraphRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphRepository{
		graphs: make(map[string]*aggregates.Graph),
		locks:  newKeyedLock(),
		logger: logger,
	}
}

// Create stores a new graph
func (r *GraphRepository) Create(ctx context.Context, graph *aggregates.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := graph.ID().String()
	if _, exists := r.graphs[key]; exists {
		return pkgerrors.NewConflictError(fmt.Sprintf("graph %s already exists", key))
	}
	r.put(key, graph)
	return nil
}

// Save persists a graph (create or update)
func (r *GraphRepository) Save(ctx context.Context, graph *aggregates.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := graph.Validate(); err != nil {
		return fmt.Errorf("refusing to save graph %s: %w", graph.ID(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(graph.ID().String(), graph)
	return nil
}

func (r *GraphRepository) put(key string, graph *aggregates.Graph) {
	if _, exists := r.graphs[key]; !exists {
		r.order = append(r.order, key)
	}
	r.graphs[key] = graph.Clone()
}

// GetByID retrieves a copy of a graph
func (r *GraphRepository) GetByID(ctx context.Context, id valueobjects.GraphID) (*aggregates.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	graph, ok := r.graphs[id.String()]
	if !ok || !graph.VisibleTo(userID(ctx)) {
		return nil, pkgerrors.NewNotFoundError("graph")
	}
	return graph.Clone(), nil
}

// List returns copies of all graphs in creation order
func (r *GraphRepository) List(ctx context.Context) ([]*aggregates.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user := userID(ctx)
	out := make([]*aggregates.Graph, 0, len(r.order))
	for _, key := range r.order {
		if graph := r.graphs[key]; graph.VisibleTo(user) {
			out = append(out, graph.Clone())
		}
	}
	return out, nil
}

// Delete removes a graph
func (r *GraphRepository) Delete(ctx context.Context, id valueobjects.GraphID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if graph, ok := r.graphs[key]; !ok || !graph.VisibleTo(userID(ctx)) {
		return pkgerrors.NewNotFoundError("graph")
	}
	delete(r.graphs, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Mutate loads the graph under its lock, applies fn and saves the result when
// fn succeeds. A failing fn leaves the stored graph untouched.
func (r *GraphRepository) Mutate(ctx context.Context, id valueobjects.GraphID, fn func(*aggregates.Graph) error) (*aggregates.Graph, error) {
	release, err := r.locks.acquire(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to lock graph %s: %w", id, err)
	}
	defer release()

	graph, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(graph); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Deleted while we held the graph lock.
	if _, ok := r.graphs[id.String()]; !ok {
		return nil, pkgerrors.NewNotFoundError("graph")
	}
	r.put(id.String(), graph)

	r.logger.Debug("Graph saved",
		zap.String("graphID", id.String()),
		zap.Int("version", graph.Version()),
	)
	return graph, nil
}

func userID(ctx context.Context) string {
	id, _ := common.GetUserID(ctx)
	return id
}
