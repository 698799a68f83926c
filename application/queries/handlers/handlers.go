// Package handlers implements the query handlers.
package handlers

import (
	"context"
	"fmt"

	"causalmap/application/ports"
	"causalmap/application/queries"
	"causalmap/application/queries/bus"
	"causalmap/application/services"
	"causalmap/domain/analysis"
	"causalmap/domain/archetypes"
	"causalmap/domain/core/valueobjects"
	"causalmap/pkg/common"
)

// QueryHandlers answers the read side queries.
type QueryHandlers struct {
	graphs    ports.GraphRepository
	analysis  *services.AnalysisService
	catalogue *archetypes.Catalogue
}

// NewQueryHandlers creates the query handlers
func NewQueryHandlers(graphs ports.GraphRepository, analyzer *services.AnalysisService, catalogue *archetypes.Catalogue) *QueryHandlers {
	return &QueryHandlers{graphs: graphs, analysis: analyzer, catalogue: catalogue}
}

// GetGraph returns the full view of a graph.
func (h *QueryHandlers) GetGraph(ctx context.Context, q queries.GetGraphQuery) (*queries.GraphView, error) {
	id, err := valueobjects.GraphIDFrom(q.GraphID)
	if err != nil {
		return nil, err
	}
	graph, err := h.graphs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return queries.NewGraphView(graph), nil
}

// ListGraphs returns one page of graph summaries.
func (h *QueryHandlers) ListGraphs(ctx context.Context, q queries.ListGraphsQuery) (*common.PaginatedResult[queries.GraphSummaryView], error) {
	graphs, err := h.graphs.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]queries.GraphSummaryView, 0, len(graphs))
	for _, g := range graphs {
		views = append(views, queries.NewGraphSummaryView(g))
	}
	return common.Paginate(views, common.PaginationParams{Page: q.Page, PageSize: q.PageSize}), nil
}

// GetAnalysis returns the analysis snapshot of a graph.
func (h *QueryHandlers) GetAnalysis(ctx context.Context, q queries.GetAnalysisQuery) (*analysis.Snapshot, error) {
	id, err := valueobjects.GraphIDFrom(q.GraphID)
	if err != nil {
		return nil, err
	}
	return h.analysis.Analyze(ctx, id)
}

// ListArchetypes returns the archetype catalogue.
func (h *QueryHandlers) ListArchetypes(_ context.Context, _ queries.ListArchetypesQuery) ([]archetypes.Archetype, error) {
	return h.catalogue.List(), nil
}

// GetArchetype returns one archetype.
func (h *QueryHandlers) GetArchetype(_ context.Context, q queries.GetArchetypeQuery) (archetypes.Archetype, error) {
	return h.catalogue.Get(q.ArchetypeID)
}

// Register binds every query type to its handler on b.
func (h *QueryHandlers) Register(b *bus.QueryBus) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.GetGraphQuery{}, typed(h.GetGraph)},
		{queries.ListGraphsQuery{}, typed(h.ListGraphs)},
		{queries.GetAnalysisQuery{}, typed(h.GetAnalysis)},
		{queries.ListArchetypesQuery{}, typed(h.ListArchetypes)},
		{queries.GetArchetypeQuery{}, typed(h.GetArchetype)},
	}
	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}

func typed[Q bus.Query, R any](handle func(context.Context, Q) (R, error)) bus.QueryHandler {
	return bus.QueryHandlerFunc(func(ctx context.Context, query bus.Query) (interface{}, error) {
		q, ok := query.(Q)
		if !ok {
			var want Q
			return nil, fmt.Errorf("invalid query type: got %T, want %T", query, want)
		}
		return handle(ctx, q)
	})
}
