package handlers

import (
	"context"

	"go.uber.org/zap"

	"causalmap/application/commands"
	"causalmap/application/ports"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// EdgeHandler handles the edge commands.
type EdgeHandler struct {
	graphMutator
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *EdgeHandler {
	return &EdgeHandler{graphMutator: newGraphMutator(graphs, snapshots, publisher, logger)}
}

// AddEdge links two existing nodes. Unknown endpoints are rejected with a
// REFERENCE error and leave the graph unchanged.
func (h *EdgeHandler) AddEdge(ctx context.Context, cmd commands.AddEdgeCommand) error {
	edge, err := buildEdge(cmd)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.AddEdge(edge)
	})
}

func buildEdge(cmd commands.AddEdgeCommand) (*entities.Edge, error) {
	id, err := valueobjects.EdgeIDFrom(cmd.EdgeID)
	if err != nil {
		return nil, err
	}
	source, err := valueobjects.NodeIDFrom(cmd.SourceID)
	if err != nil {
		return nil, err
	}
	target, err := valueobjects.NodeIDFrom(cmd.TargetID)
	if err != nil {
		return nil, err
	}
	polarity, err := valueobjects.ParsePolarity(cmd.Polarity)
	if err != nil {
		return nil, err
	}
	edge, err := entities.NewEdge(id, source, target, polarity, cmd.HasDelay)
	if err != nil {
		return nil, err
	}
	return edge.WithDescription(cmd.Description), nil
}

// UpdateEdge applies a partial update to an edge.
func (h *EdgeHandler) UpdateEdge(ctx context.Context, cmd commands.UpdateEdgeCommand) error {
	id, err := valueobjects.EdgeIDFrom(cmd.EdgeID)
	if err != nil {
		return err
	}

	patch := entities.EdgePatch{HasDelay: cmd.HasDelay, Description: cmd.Description}
	if cmd.SourceID != nil {
		source, err := valueobjects.NodeIDFrom(*cmd.SourceID)
		if err != nil {
			return err
		}
		patch.SourceID = &source
	}
	if cmd.TargetID != nil {
		target, err := valueobjects.NodeIDFrom(*cmd.TargetID)
		if err != nil {
			return err
		}
		patch.TargetID = &target
	}
	if cmd.Polarity != nil {
		polarity, err := valueobjects.ParsePolarity(*cmd.Polarity)
		if err != nil {
			return err
		}
		patch.Polarity = &polarity
	}

	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.UpdateEdge(id, patch)
	})
}

// RemoveEdge removes an edge.
func (h *EdgeHandler) RemoveEdge(ctx context.Context, cmd commands.RemoveEdgeCommand) error {
	id, err := valueobjects.EdgeIDFrom(cmd.EdgeID)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.RemoveEdge(id)
	})
}
