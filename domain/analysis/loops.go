package analysis

import (
	"fmt"

	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// DetectLoops finds feedback loops with a depth-first search that shares one
// visited set across all start nodes. A node reached on an earlier search is
// never expanded again, so the result is not the full set of simple cycles:
// a loop whose nodes were all explored from an earlier start can be missed,
// and the same node set can be reported twice if reached by two back edges.
//
// Start nodes follow node order and neighbours follow edge order, so the
// output is deterministic for a given input.
func DetectLoops(nodes []*entities.Node, edges []*entities.Edge) []Loop {
	loops := []Loop{}
	if len(nodes) == 0 || len(edges) == 0 {
		return loops
	}

	adjacency := make(map[valueobjects.NodeID][]valueobjects.NodeID)
	for _, e := range edges {
		adjacency[e.SourceID()] = append(adjacency[e.SourceID()], e.TargetID())
	}

	d := &detector{
		adjacency: adjacency,
		edges:     edges,
		visited:   make(map[valueobjects.NodeID]bool),
		onStack:   make(map[valueobjects.NodeID]bool),
		loops:     loops,
	}
	for _, n := range nodes {
		if !d.visited[n.ID()] {
			d.visit(n.ID())
		}
	}
	return d.loops
}

type detector struct {
	adjacency map[valueobjects.NodeID][]valueobjects.NodeID
	edges     []*entities.Edge
	visited   map[valueobjects.NodeID]bool
	onStack   map[valueobjects.NodeID]bool
	path      []valueobjects.NodeID
	loops     []Loop
}

func (d *detector) visit(id valueobjects.NodeID) {
	d.visited[id] = true
	d.onStack[id] = true
	d.path = append(d.path, id)

	for _, next := range d.adjacency[id] {
		switch {
		case !d.visited[next]:
			d.visit(next)
		case d.onStack[next]:
			d.record(d.cycleFrom(next))
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.onStack[id] = false
}

// cycleFrom copies the path suffix that starts at the re-entered node.
func (d *detector) cycleFrom(start valueobjects.NodeID) []valueobjects.NodeID {
	for i, id := range d.path {
		if id.Equals(start) {
			cycle := make([]valueobjects.NodeID, len(d.path)-i)
			copy(cycle, d.path[i:])
			return cycle
		}
	}
	return nil
}

func (d *detector) record(cycle []valueobjects.NodeID) {
	if len(cycle) == 0 {
		return
	}
	loopType := ClassifyLoop(cycle, d.edges)
	d.loops = append(d.loops, Loop{
		ID:          fmt.Sprintf("loop-%d", len(d.loops)+1),
		Nodes:       cycle,
		Type:        loopType,
		Description: fmt.Sprintf("%s loop involving %d variables", loopType.Title(), len(cycle)),
	})
}

// ClassifyLoop counts the opposite links around the cycle, wrapping from the
// last node back to the first. An even count is reinforcing, odd is balancing.
// For each consecutive pair the first matching edge in edge order is used; a
// pair with no edge counts as same-direction. A single-node cycle is decided
// by its self-loop.
func ClassifyLoop(cycle []valueobjects.NodeID, edges []*entities.Edge) LoopType {
	opposite := 0
	for i, current := range cycle {
		next := cycle[(i+1)%len(cycle)]
		if e := firstEdge(edges, current, next); e != nil && e.Polarity() == valueobjects.PolarityOpposite {
			opposite++
		}
	}
	if opposite%2 == 0 {
		return LoopReinforcing
	}
	return LoopBalancing
}

func firstEdge(edges []*entities.Edge, source, target valueobjects.NodeID) *entities.Edge {
	for _, e := range edges {
		if e.SourceID().Equals(source) && e.TargetID().Equals(target) {
			return e
		}
	}
	return nil
}
