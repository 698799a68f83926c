package aggregates

import (
	"fmt"
	"strings"
	"time"

	"causalmap/domain/config"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
	"causalmap/domain/events"
	pkgerrors "causalmap/pkg/errors"
)

// Graph is the aggregate root of one causal analysis. It owns the factors,
// the nodes and the causal links between them, and guarantees that no edge
// ever references a node outside the graph.
type Graph struct {
	id          valueobjects.GraphID
	name        string
	description string
	ownerID     string
	cfg         *config.DomainConfig
	nodes       *ordered[valueobjects.NodeID, *entities.Node]
	edges       *ordered[valueobjects.EdgeID, *entities.Edge]
	factors     *ordered[valueobjects.FactorID, *entities.Factor]
	createdAt   time.Time
	updatedAt   time.Time
	version     int
	events      []events.DomainEvent
}

// NewGraph creates an empty graph with a generated id.
func NewGraph(name, description string, cfg *config.DomainConfig) (*Graph, error) {
	return NewGraphWithID(valueobjects.NewGraphID(), name, description, cfg)
}

// NewGraphWithID creates an empty graph with the given id.
func NewGraphWithID(id valueobjects.GraphID, name, description string, cfg *config.DomainConfig) (*Graph, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("graph ID cannot be empty")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = cfg.DefaultGraphName
	}

	now := time.Now()
	g := &Graph{
		id:          id,
		name:        name,
		description: strings.TrimSpace(description),
		cfg:         cfg,
		nodes:       newOrdered[valueobjects.NodeID, *entities.Node](),
		edges:       newOrdered[valueobjects.EdgeID, *entities.Edge](),
		factors:     newOrdered[valueobjects.FactorID, *entities.Factor](),
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}
	g.addEvent(events.NewGraphCreated(id, name, now))
	return g, nil
}

func (g *Graph) ID() valueobjects.GraphID     { return g.id }
func (g *Graph) Name() string                 { return g.name }
func (g *Graph) Description() string          { return g.description }
func (g *Graph) OwnerID() string              { return g.ownerID }
func (g *Graph) Version() int                 { return g.version }
func (g *Graph) CreatedAt() time.Time         { return g.createdAt }
func (g *Graph) UpdatedAt() time.Time         { return g.updatedAt }
func (g *Graph) Config() *config.DomainConfig { return g.cfg }
func (g *Graph) NodeCount() int               { return g.nodes.len() }
func (g *Graph) EdgeCount() int               { return g.edges.len() }
func (g *Graph) FactorCount() int             { return g.factors.len() }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*entities.Node { return g.nodes.values() }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*entities.Edge { return g.edges.values() }

// Factors returns the factors in insertion order.
func (g *Graph) Factors() []*entities.Factor { return g.factors.values() }

func (g *Graph) Node(id valueobjects.NodeID) (*entities.Node, bool)       { return g.nodes.get(id) }
func (g *Graph) Edge(id valueobjects.EdgeID) (*entities.Edge, bool)       { return g.edges.get(id) }
func (g *Graph) Factor(id valueobjects.FactorID) (*entities.Factor, bool) { return g.factors.get(id) }
func (g *Graph) HasNode(id valueobjects.NodeID) bool                      { return g.nodes.has(id) }

// AssignOwner records the user the graph belongs to. An empty owner leaves
// the graph visible to every caller.
func (g *Graph) AssignOwner(userID string) {
	g.ownerID = strings.TrimSpace(userID)
}

// VisibleTo reports whether userID may read or change the graph. Unowned
// graphs and callers without a user are not scoped.
func (g *Graph) VisibleTo(userID string) bool {
	return g.ownerID == "" || userID == "" || g.ownerID == userID
}

// AddNode adds a node to the graph
func (g *Graph) AddNode(node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}
	if g.nodes.has(node.ID()) {
		return pkgerrors.NewConflictError(fmt.Sprintf("node %s already exists", node.ID()))
	}
	if g.nodes.len() >= g.cfg.MaxNodesPerGraph {
		return pkgerrors.NewLimitExceededError("nodes", g.cfg.MaxNodesPerGraph)
	}
	if factorID, ok := node.FactorID(); ok && !g.factors.has(factorID) {
		return pkgerrors.NewReferenceError(fmt.Sprintf("node factor %s does not exist", factorID))
	}

	g.nodes.add(node.ID(), node)
	g.touch()
	g.addEvent(events.NewNodeAdded(g.id, g.version, node.ID(), node.Label().String(), node.Category(), node.Kind(), g.updatedAt))
	return nil
}

// UpdateNode applies a partial update to a node.
func (g *Graph) UpdateNode(id valueobjects.NodeID, patch entities.NodePatch) error {
	node, ok := g.nodes.get(id)
	if !ok {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("node %s", id))
	}
	if err := node.Apply(patch, g.cfg); err != nil {
		return err
	}
	g.touch()
	g.addEvent(events.NewNodeUpdated(g.id, g.version, id, g.updatedAt))
	return nil
}

// RemoveNode removes a node and every edge that references it.
func (g *Graph) RemoveNode(id valueobjects.NodeID) error {
	if !g.nodes.has(id) {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("node %s", id))
	}
	removed := g.removeNode(id)
	g.touch()
	g.addEvent(events.NewNodeRemoved(g.id, g.version, id, removed, g.updatedAt))
	return nil
}

func (g *Graph) removeNode(id valueobjects.NodeID) []valueobjects.EdgeID {
	removed := []valueobjects.EdgeID{}
	for _, edge := range g.edges.values() {
		if edge.Touches(id) {
			g.edges.remove(edge.ID())
			removed = append(removed, edge.ID())
		}
	}
	g.nodes.remove(id)
	return removed
}

// AddEdge adds a causal link. Both endpoints must already be in the graph.
func (g *Graph) AddEdge(edge *entities.Edge) error {
	if edge == nil {
		return pkgerrors.NewValidationError("edge cannot be nil")
	}
	if g.edges.has(edge.ID()) {
		return pkgerrors.NewConflictError(fmt.Sprintf("edge %s already exists", edge.ID()))
	}
	if err := g.checkEndpoints(edge); err != nil {
		return err
	}
	if g.edges.len() >= g.cfg.MaxEdgesPerGraph {
		return pkgerrors.NewLimitExceededError("edges", g.cfg.MaxEdgesPerGraph)
	}

	g.edges.add(edge.ID(), edge)
	g.touch()
	g.addEvent(events.NewEdgeAdded(g.id, g.version, edge.ID(), edge.SourceID(), edge.TargetID(), edge.Polarity(), edge.HasDelay(), g.updatedAt))
	return nil
}

// UpdateEdge applies a partial update to an edge. A patch that would leave
// the edge dangling is rejected and the edge is unchanged.
func (g *Graph) UpdateEdge(id valueobjects.EdgeID, patch entities.EdgePatch) error {
	edge, ok := g.edges.get(id)
	if !ok {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("edge %s", id))
	}
	updated, err := edge.Patched(patch)
	if err != nil {
		return err
	}
	if err := g.checkEndpoints(updated); err != nil {
		return err
	}

	g.edges.set(id, updated)
	g.touch()
	g.addEvent(events.NewEdgeUpdated(g.id, g.version, id, g.updatedAt))
	return nil
}

// RemoveEdge removes a causal link
func (g *Graph) RemoveEdge(id valueobjects.EdgeID) error {
	if !g.edges.remove(id) {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("edge %s", id))
	}
	g.touch()
	g.addEvent(events.NewEdgeRemoved(g.id, g.version, id, g.updatedAt))
	return nil
}

func (g *Graph) checkEndpoints(edge *entities.Edge) error {
	if !g.nodes.has(edge.SourceID()) {
		return pkgerrors.NewReferenceError(fmt.Sprintf("edge source %s does not exist", edge.SourceID())).
			WithDetails(map[string]interface{}{"node_id": edge.SourceID().String()})
	}
	if !g.nodes.has(edge.TargetID()) {
		return pkgerrors.NewReferenceError(fmt.Sprintf("edge target %s does not exist", edge.TargetID())).
			WithDetails(map[string]interface{}{"node_id": edge.TargetID().String()})
	}
	if edge.IsSelfLoop() && !g.cfg.AllowSelfLoops {
		return pkgerrors.NewValidationError("self-loops are not allowed")
	}
	return nil
}

// AddFactor adds a SWOT factor
func (g *Graph) AddFactor(factor *entities.Factor) error {
	if factor == nil {
		return pkgerrors.NewValidationError("factor cannot be nil")
	}
	if g.factors.has(factor.ID()) {
		return pkgerrors.NewConflictError(fmt.Sprintf("factor %s already exists", factor.ID()))
	}
	if g.factors.len() >= g.cfg.MaxFactorsPerGraph {
		return pkgerrors.NewLimitExceededError("factors", g.cfg.MaxFactorsPerGraph)
	}

	g.factors.add(factor.ID(), factor)
	g.touch()
	g.addEvent(events.NewFactorAdded(g.id, g.version, factor.ID(), factor.Category(), g.updatedAt))
	return nil
}

// UpdateFactor applies a partial update to a factor.
func (g *Graph) UpdateFactor(id valueobjects.FactorID, patch entities.FactorPatch) error {
	factor, ok := g.factors.get(id)
	if !ok {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("factor %s", id))
	}
	if err := factor.Apply(patch, g.cfg); err != nil {
		return err
	}
	g.touch()
	g.addEvent(events.NewFactorUpdated(g.id, g.version, id, g.updatedAt))
	return nil
}

// RemoveFactor removes a factor together with every node created from it,
// and through them every edge those nodes took part in.
func (g *Graph) RemoveFactor(id valueobjects.FactorID) error {
	if !g.factors.has(id) {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("factor %s", id))
	}

	removed := []valueobjects.NodeID{}
	for _, node := range g.nodes.values() {
		if fid, ok := node.FactorID(); ok && fid.Equals(id) {
			g.removeNode(node.ID())
			removed = append(removed, node.ID())
		}
	}
	g.factors.remove(id)
	g.touch()
	g.addEvent(events.NewFactorRemoved(g.id, g.version, id, removed, g.updatedAt))
	return nil
}

// AddNodeFromFactor places an existing factor on the diagram as a new node.
func (g *Graph) AddNodeFromFactor(factorID valueobjects.FactorID, nodeID valueobjects.NodeID) (*entities.Node, error) {
	factor, ok := g.factors.get(factorID)
	if !ok {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("factor %s", factorID))
	}
	node, err := entities.NewNodeFromFactor(nodeID, factor, g.cfg)
	if err != nil {
		return nil, err
	}
	if err := g.AddNode(node); err != nil {
		return nil, err
	}
	return node, nil
}

// RecordArchetypeApplied notes that a set of nodes and edges came from an
// archetype template.
func (g *Graph) RecordArchetypeApplied(archetypeID string, nodeIDs []valueobjects.NodeID, edgeIDs []valueobjects.EdgeID) {
	g.addEvent(events.NewArchetypeApplied(g.id, g.version, archetypeID, nodeIDs, edgeIDs, time.Now()))
}

// Clear drops every node, edge and factor.
func (g *Graph) Clear() {
	nodes, edges, factors := g.nodes.len(), g.edges.len(), g.factors.len()
	g.nodes = newOrdered[valueobjects.NodeID, *entities.Node]()
	g.edges = newOrdered[valueobjects.EdgeID, *entities.Edge]()
	g.factors = newOrdered[valueobjects.FactorID, *entities.Factor]()
	g.touch()
	g.addEvent(events.NewGraphCleared(g.id, g.version, nodes, edges, factors, g.updatedAt))
}

// MarkDeleted records the deletion of the graph.
func (g *Graph) MarkDeleted() {
	g.addEvent(events.NewGraphDeleted(g.id, g.version, time.Now()))
}

// Validate ensures graph invariants
func (g *Graph) Validate() error {
	for _, edge := range g.edges.values() {
		if !g.nodes.has(edge.SourceID()) || !g.nodes.has(edge.TargetID()) {
			return pkgerrors.NewReferenceError(fmt.Sprintf("edge %s references a missing node", edge.ID()))
		}
	}
	for _, node := range g.nodes.values() {
		if fid, ok := node.FactorID(); ok && !g.factors.has(fid) {
			return pkgerrors.NewReferenceError(fmt.Sprintf("node %s references a missing factor", node.ID()))
		}
	}
	if g.nodes.len() > g.cfg.MaxNodesPerGraph {
		return pkgerrors.NewLimitExceededError("nodes", g.cfg.MaxNodesPerGraph)
	}
	if g.edges.len() > g.cfg.MaxEdgesPerGraph {
		return pkgerrors.NewLimitExceededError("edges", g.cfg.MaxEdgesPerGraph)
	}
	return nil
}

// Clone returns a deep copy with no pending events. Repositories hand out
// clones so callers never share mutable state.
func (g *Graph) Clone() *Graph {
	c := *g
	c.nodes = g.nodes.clone((*entities.Node).Clone)
	c.edges = g.edges.clone((*entities.Edge).Clone)
	c.factors = g.factors.clone((*entities.Factor).Clone)
	c.events = nil
	return &c
}

// GetUncommittedEvents returns all uncommitted domain events
func (g *Graph) GetUncommittedEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(g.events))
	copy(out, g.events)
	return out
}

// MarkEventsAsCommitted clears all uncommitted events
func (g *Graph) MarkEventsAsCommitted() {
	g.events = nil
}

func (g *Graph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}

func (g *Graph) touch() {
	g.updatedAt = time.Now()
	g.version++
}
