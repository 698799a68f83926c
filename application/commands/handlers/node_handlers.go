package handlers

import (
	"context"

	"go.uber.org/zap"

	"causalmap/application/commands"
	"causalmap/application/ports"
	"causalmap/domain/config"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// NodeHandler handles the node commands.
type NodeHandler struct {
	graphMutator
	cfg *config.DomainConfig
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		graphMutator: newGraphMutator(graphs, snapshots, publisher, logger),
		cfg:          cfg,
	}
}

// AddNode adds a node to the graph.
func (h *NodeHandler) AddNode(ctx context.Context, cmd commands.AddNodeCommand) error {
	node, err := h.buildNode(cmd)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.AddNode(node)
	})
}

func (h *NodeHandler) buildNode(cmd commands.AddNodeCommand) (*entities.Node, error) {
	id, err := valueobjects.NodeIDFrom(cmd.NodeID)
	if err != nil {
		return nil, err
	}
	label, err := valueobjects.NewLabelWithConfig(cmd.Label, h.cfg)
	if err != nil {
		return nil, err
	}
	category, err := valueobjects.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}
	kind, err := valueobjects.ParseNodeKind(cmd.Kind)
	if err != nil {
		return nil, err
	}
	return entities.NewNode(id, label, category, kind)
}

// UpdateNode applies a partial update to a node.
func (h *NodeHandler) UpdateNode(ctx context.Context, cmd commands.UpdateNodeCommand) error {
	id, err := valueobjects.NodeIDFrom(cmd.NodeID)
	if err != nil {
		return err
	}

	patch := entities.NodePatch{Label: cmd.Label}
	if cmd.Category != nil {
		category, err := valueobjects.ParseCategory(*cmd.Category)
		if err != nil {
			return err
		}
		patch.Category = &category
	}
	if cmd.Kind != nil {
		kind, err := valueobjects.ParseNodeKind(*cmd.Kind)
		if err != nil {
			return err
		}
		patch.Kind = &kind
	}

	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.UpdateNode(id, patch)
	})
}

// RemoveNode removes a node and the edges touching it.
func (h *NodeHandler) RemoveNode(ctx context.Context, cmd commands.RemoveNodeCommand) error {
	id, err := valueobjects.NodeIDFrom(cmd.NodeID)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.RemoveNode(id)
	})
}

// AddNodeFromFactor places a registered factor on the diagram.
func (h *NodeHandler) AddNodeFromFactor(ctx context.Context, cmd commands.AddNodeFromFactorCommand) error {
	factorID, err := valueobjects.FactorIDFrom(cmd.FactorID)
	if err != nil {
		return err
	}
	nodeID, err := valueobjects.NodeIDFrom(cmd.NodeID)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		_, err := g.AddNodeFromFactor(factorID, nodeID)
		return err
	})
}
