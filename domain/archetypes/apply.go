package archetypes

import (
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
	pkgerrors "causalmap/pkg/errors"
)

// IDGenerator supplies ids for the nodes and edges an archetype creates.
type IDGenerator interface {
	NodeID() valueobjects.NodeID
	EdgeID() valueobjects.EdgeID
}

// UUIDGenerator generates random UUID ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NodeID() valueobjects.NodeID { return valueobjects.NewNodeID() }
func (UUIDGenerator) EdgeID() valueobjects.EdgeID { return valueobjects.NewEdgeID() }

// Applied lists what an Apply call added, in creation order.
type Applied struct {
	NodeIDs []valueobjects.NodeID
	EdgeIDs []valueobjects.EdgeID
}

// Apply adds the archetype's template nodes to the graph, then links node i to
// node i+1 for each link template i that has a successor node. Capacity is
// checked up front so a template never lands half applied.
func Apply(g *aggregates.Graph, a Archetype, ids IDGenerator) (Applied, error) {
	if ids == nil {
		ids = UUIDGenerator{}
	}

	linkCount := len(a.Links)
	if last := len(a.Nodes) - 1; linkCount > last {
		linkCount = last
	}
	if linkCount < 0 {
		linkCount = 0
	}

	cfg := g.Config()
	if g.NodeCount()+len(a.Nodes) > cfg.MaxNodesPerGraph {
		return Applied{}, pkgerrors.NewLimitExceededError("nodes", cfg.MaxNodesPerGraph)
	}
	if g.EdgeCount()+linkCount > cfg.MaxEdgesPerGraph {
		return Applied{}, pkgerrors.NewLimitExceededError("edges", cfg.MaxEdgesPerGraph)
	}

	applied := Applied{
		NodeIDs: make([]valueobjects.NodeID, 0, len(a.Nodes)),
		EdgeIDs: make([]valueobjects.EdgeID, 0, linkCount),
	}
	for _, tmpl := range a.Nodes {
		label, err := valueobjects.NewLabelWithConfig(tmpl.Label, cfg)
		if err != nil {
			return Applied{}, err
		}
		node, err := entities.NewNode(ids.NodeID(), label, tmpl.Category, tmpl.Kind)
		if err != nil {
			return Applied{}, err
		}
		if err := g.AddNode(node); err != nil {
			return Applied{}, err
		}
		applied.NodeIDs = append(applied.NodeIDs, node.ID())
	}

	for i := 0; i < linkCount; i++ {
		tmpl := a.Links[i]
		edge, err := entities.NewEdge(ids.EdgeID(), applied.NodeIDs[i], applied.NodeIDs[i+1], tmpl.Polarity, tmpl.HasDelay)
		if err != nil {
			return Applied{}, err
		}
		if err := g.AddEdge(edge); err != nil {
			return Applied{}, err
		}
		applied.EdgeIDs = append(applied.EdgeIDs, edge.ID())
	}

	g.RecordArchetypeApplied(a.ID, applied.NodeIDs, applied.EdgeIDs)
	return applied, nil
}
