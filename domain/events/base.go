package events

import (
	"time"

	"causalmap/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields. AggregateID is always the graph ID
// and Version the graph version the event produced.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(graphID valueobjects.GraphID, eventType string, version int, at time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: graphID.String(),
		EventType:   eventType,
		Timestamp:   at,
		Version:     version,
	}
}

// Event types
const (
	TypeGraphCreated     = "graph.created"
	TypeGraphCleared     = "graph.cleared"
	TypeGraphDeleted     = "graph.deleted"
	TypeNodeAdded        = "node.added"
	TypeNodeUpdated      = "node.updated"
	TypeNodeRemoved      = "node.removed"
	TypeEdgeAdded        = "edge.added"
	TypeEdgeUpdated      = "edge.updated"
	TypeEdgeRemoved      = "edge.removed"
	TypeFactorAdded      = "factor.added"
	TypeFactorUpdated    = "factor.updated"
	TypeFactorRemoved    = "factor.removed"
	TypeArchetypeApplied = "archetype.applied"
	TypeAnalysisComputed = "analysis.computed"
)

// Graph Events

type GraphCreated struct {
	BaseEvent
	Name string `json:"name"`
}

func NewGraphCreated(graphID valueobjects.GraphID, name string, at time.Time) GraphCreated {
	return GraphCreated{BaseEvent: newBase(graphID, TypeGraphCreated, 1, at), Name: name}
}

// GraphCleared is raised when every node, edge and factor is dropped at once.
type GraphCleared struct {
	BaseEvent
	NodesRemoved   int `json:"nodes_removed"`
	EdgesRemoved   int `json:"edges_removed"`
	FactorsRemoved int `json:"factors_removed"`
}

func NewGraphCleared(graphID valueobjects.GraphID, version, nodes, edges, factors int, at time.Time) GraphCleared {
	return GraphCleared{
		BaseEvent:      newBase(graphID, TypeGraphCleared, version, at),
		NodesRemoved:   nodes,
		EdgesRemoved:   edges,
		FactorsRemoved: factors,
	}
}

type GraphDeleted struct {
	BaseEvent
}

func NewGraphDeleted(graphID valueobjects.GraphID, version int, at time.Time) GraphDeleted {
	return GraphDeleted{BaseEvent: newBase(graphID, TypeGraphDeleted, version, at)}
}

// Node Events

type NodeAdded struct {
	BaseEvent
	NodeID   valueobjects.NodeID   `json:"node_id"`
	Label    string                `json:"label"`
	Category valueobjects.Category `json:"category"`
	Kind     valueobjects.NodeKind `json:"kind"`
}

func NewNodeAdded(graphID valueobjects.GraphID, version int, nodeID valueobjects.NodeID, label string, category valueobjects.Category, kind valueobjects.NodeKind, at time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: newBase(graphID, TypeNodeAdded, version, at),
		NodeID:    nodeID,
		Label:     label,
		Category:  category,
		Kind:      kind,
	}
}

type NodeUpdated struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

func NewNodeUpdated(graphID valueobjects.GraphID, version int, nodeID valueobjects.NodeID, at time.Time) NodeUpdated {
	return NodeUpdated{BaseEvent: newBase(graphID, TypeNodeUpdated, version, at), NodeID: nodeID}
}

// NodeRemoved carries the edges that went with the node.
type NodeRemoved struct {
	BaseEvent
	NodeID       valueobjects.NodeID   `json:"node_id"`
	RemovedEdges []valueobjects.EdgeID `json:"removed_edges"`
}

func NewNodeRemoved(graphID valueobjects.GraphID, version int, nodeID valueobjects.NodeID, removedEdges []valueobjects.EdgeID, at time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent:    newBase(graphID, TypeNodeRemoved, version, at),
		NodeID:       nodeID,
		RemovedEdges: removedEdges,
	}
}

// Edge Events

type EdgeAdded struct {
	BaseEvent
	EdgeID   valueobjects.EdgeID   `json:"edge_id"`
	SourceID valueobjects.NodeID   `json:"source_id"`
	TargetID valueobjects.NodeID   `json:"target_id"`
	Polarity valueobjects.Polarity `json:"polarity"`
	HasDelay bool                  `json:"has_delay"`
}

func NewEdgeAdded(graphID valueobjects.GraphID, version int, edgeID valueobjects.EdgeID, source, target valueobjects.NodeID, polarity valueobjects.Polarity, hasDelay bool, at time.Time) EdgeAdded {
	return EdgeAdded{
		BaseEvent: newBase(graphID, TypeEdgeAdded, version, at),
		EdgeID:    edgeID,
		SourceID:  source,
		TargetID:  target,
		Polarity:  polarity,
		HasDelay:  hasDelay,
	}
}

type EdgeUpdated struct {
	BaseEvent
	EdgeID valueobjects.EdgeID `json:"edge_id"`
}

func NewEdgeUpdated(graphID valueobjects.GraphID, version int, edgeID valueobjects.EdgeID, at time.Time) EdgeUpdated {
	return EdgeUpdated{BaseEvent: newBase(graphID, TypeEdgeUpdated, version, at), EdgeID: edgeID}
}

type EdgeRemoved struct {
	BaseEvent
	EdgeID valueobjects.EdgeID `json:"edge_id"`
}

func NewEdgeRemoved(graphID valueobjects.GraphID, version int, edgeID valueobjects.EdgeID, at time.Time) EdgeRemoved {
	return EdgeRemoved{BaseEvent: newBase(graphID, TypeEdgeRemoved, version, at), EdgeID: edgeID}
}

// Factor Events

type FactorAdded struct {
	BaseEvent
	FactorID valueobjects.FactorID `json:"factor_id"`
	Category valueobjects.Category `json:"category"`
}

func NewFactorAdded(graphID valueobjects.GraphID, version int, factorID valueobjects.FactorID, category valueobjects.Category, at time.Time) FactorAdded {
	return FactorAdded{
		BaseEvent: newBase(graphID, TypeFactorAdded, version, at),
		FactorID:  factorID,
		Category:  category,
	}
}

type FactorUpdated struct {
	BaseEvent
	FactorID valueobjects.FactorID `json:"factor_id"`
}

func NewFactorUpdated(graphID valueobjects.GraphID, version int, factorID valueobjects.FactorID, at time.Time) FactorUpdated {
	return FactorUpdated{BaseEvent: newBase(graphID, TypeFactorUpdated, version, at), FactorID: factorID}
}

// FactorRemoved carries the nodes created from the factor, which were removed
// with it.
type FactorRemoved struct {
	BaseEvent
	FactorID     valueobjects.FactorID `json:"factor_id"`
	RemovedNodes []valueobjects.NodeID `json:"removed_nodes"`
}

func NewFactorRemoved(graphID valueobjects.GraphID, version int, factorID valueobjects.FactorID, removedNodes []valueobjects.NodeID, at time.Time) FactorRemoved {
	return FactorRemoved{
		BaseEvent:    newBase(graphID, TypeFactorRemoved, version, at),
		FactorID:     factorID,
		RemovedNodes: removedNodes,
	}
}

// ArchetypeApplied is raised after an archetype template was instantiated.
type ArchetypeApplied struct {
	BaseEvent
	ArchetypeID string                `json:"archetype_id"`
	NodeIDs     []valueobjects.NodeID `json:"node_ids"`
	EdgeIDs     []valueobjects.EdgeID `json:"edge_ids"`
}

func NewArchetypeApplied(graphID valueobjects.GraphID, version int, archetypeID string, nodeIDs []valueobjects.NodeID, edgeIDs []valueobjects.EdgeID, at time.Time) ArchetypeApplied {
	return ArchetypeApplied{
		BaseEvent:   newBase(graphID, TypeArchetypeApplied, version, at),
		ArchetypeID: archetypeID,
		NodeIDs:     nodeIDs,
		EdgeIDs:     edgeIDs,
	}
}

// Analysis Events

// AnalysisComputed is raised by the application layer after a fresh analysis.
type AnalysisComputed struct {
	BaseEvent
	Loops          int `json:"loops"`
	Reinforcing    int `json:"reinforcing"`
	Balancing      int `json:"balancing"`
	LeveragePoints int `json:"leverage_points"`
	Options        int `json:"options"`

	// Set when an earlier analysis of the graph existed.
	PreviousVersion int `json:"previous_version,omitempty"`
	NodeDelta       int `json:"node_delta"`
	EdgeDelta       int `json:"edge_delta"`
}

func NewAnalysisComputed(graphID valueobjects.GraphID, version, loops, reinforcing, balancing, leveragePoints, options int, at time.Time) AnalysisComputed {
	return AnalysisComputed{
		BaseEvent:      newBase(graphID, TypeAnalysisComputed, version, at),
		Loops:          loops,
		Reinforcing:    reinforcing,
		Balancing:      balancing,
		LeveragePoints: leveragePoints,
		Options:        options,
	}
}

// WithChanges records how the graph moved since the previous analysis.
func (e AnalysisComputed) WithChanges(previousVersion, nodeDelta, edgeDelta int) AnalysisComputed {
	e.PreviousVersion = previousVersion
	e.NodeDelta = nodeDelta
	e.EdgeDelta = edgeDelta
	return e
}
