package handlers

import (
	"context"

	"go.uber.org/zap"

	"causalmap/application/commands"
	"causalmap/application/ports"
	"causalmap/domain/archetypes"
	"causalmap/domain/config"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/valueobjects"
	"causalmap/pkg/common"
)

// GraphHandler handles the graph level commands.
type GraphHandler struct {
	graphMutator
	cfg        *config.DomainConfig
	catalogue  *archetypes.Catalogue
	generateID archetypes.IDGenerator
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	catalogue *archetypes.Catalogue,
	ids archetypes.IDGenerator,
	logger *zap.Logger,
) *GraphHandler {
	if ids == nil {
		ids = archetypes.UUIDGenerator{}
	}
	return &GraphHandler{
		graphMutator: newGraphMutator(graphs, snapshots, publisher, logger),
		cfg:          cfg,
		catalogue:    catalogue,
		generateID:   ids,
	}
}

// CreateGraph stores a new empty graph.
func (h *GraphHandler) CreateGraph(ctx context.Context, cmd commands.CreateGraphCommand) error {
	id, err := valueobjects.GraphIDFrom(cmd.GraphID)
	if err != nil {
		return err
	}

	graph, err := aggregates.NewGraphWithID(id, cmd.Name, cmd.Description, h.cfg)
	if err != nil {
		return err
	}
	if userID, ok := common.GetUserID(ctx); ok {
		graph.AssignOwner(userID)
	}

	if err := h.graphs.Create(ctx, graph); err != nil {
		return err
	}

	h.logger.Info("Graph created",
		zap.String("graphID", id.String()),
		zap.String("name", graph.Name()),
	)
	h.publish(ctx, graph)
	return nil
}

// DeleteGraph removes a graph and its stored analysis.
func (h *GraphHandler) DeleteGraph(ctx context.Context, cmd commands.DeleteGraphCommand) error {
	id, err := valueobjects.GraphIDFrom(cmd.GraphID)
	if err != nil {
		return err
	}

	graph, err := h.graphs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.graphs.Delete(ctx, id); err != nil {
		return err
	}
	if err := h.snapshots.Delete(ctx, id); err != nil {
		h.logger.Warn("Failed to drop analysis snapshot", zap.String("graphID", id.String()), zap.Error(err))
	}

	graph.MarkDeleted()
	h.logger.Info("Graph deleted", zap.String("graphID", id.String()))
	h.publish(ctx, graph)
	return nil
}

// ClearGraph drops every node, edge and factor of a graph.
func (h *GraphHandler) ClearGraph(ctx context.Context, cmd commands.ClearGraphCommand) error {
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		g.Clear()
		return nil
	})
}

// ApplyArchetype adds the nodes and links of an archetype template.
func (h *GraphHandler) ApplyArchetype(ctx context.Context, cmd commands.ApplyArchetypeCommand) error {
	archetype, err := h.catalogue.Get(cmd.ArchetypeID)
	if err != nil {
		return err
	}

	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		applied, err := archetypes.Apply(g, archetype, h.generateID)
		if err != nil {
			return err
		}
		h.logger.Info("Archetype applied",
			zap.String("graphID", g.ID().String()),
			zap.String("archetypeID", archetype.ID),
			zap.Int("nodes", len(applied.NodeIDs)),
			zap.Int("edges", len(applied.EdgeIDs)),
		)
		return nil
	})
}
