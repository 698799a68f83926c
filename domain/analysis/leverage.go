package analysis

import (
	"fmt"

	"causalmap/domain/config"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// IdentifyLeveragePoints ranks nodes as intervention points using the default
// degree threshold.
func IdentifyLeveragePoints(nodes []*entities.Node, edges []*entities.Edge, loops []Loop) []LeveragePoint {
	return IdentifyLeveragePointsWithConfig(nodes, edges, loops, config.DefaultDomainConfig())
}

// IdentifyLeveragePointsWithConfig applies two rules to each node in order:
//
//   - loop-breaker (high impact): degree at least cfg.LoopBreakerMinDegree and
//     member of a reinforcing loop.
//   - delay-sensitive (medium impact): endpoint of at least one delayed edge.
//
// Degree counts edge endpoints, so a self-loop adds two. A node can match both
// rules; its loop-breaker point comes first. Point ids are numbered in output
// order.
func IdentifyLeveragePointsWithConfig(nodes []*entities.Node, edges []*entities.Edge, loops []Loop, cfg *config.DomainConfig) []LeveragePoint {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	degree := Degrees(edges)
	delayed := make(map[valueobjects.NodeID]bool)
	for _, e := range edges {
		if e.HasDelay() {
			delayed[e.SourceID()] = true
			delayed[e.TargetID()] = true
		}
	}

	points := []LeveragePoint{}
	add := func(node *entities.Node, impact Impact, kind LeverageType, description string) {
		points = append(points, LeveragePoint{
			ID:          fmt.Sprintf("lp-%d", len(points)+1),
			NodeID:      node.ID(),
			Impact:      impact,
			Type:        kind,
			Description: description,
		})
	}

	for _, node := range nodes {
		label := node.Label().String()
		if degree[node.ID()] >= cfg.LoopBreakerMinDegree && inReinforcingLoop(node.ID(), loops) {
			add(node, ImpactHigh, LeverageLoopBreaker, fmt.Sprintf(
				"High-leverage intervention point: Breaking the reinforcing dynamic at \"%s\" can shift system behavior", label))
		}
		if delayed[node.ID()] {
			add(node, ImpactMedium, LeverageDelaySensitive, fmt.Sprintf(
				"Time-sensitive variable: Early action on \"%s\" is critical due to delay effects", label))
		}
	}
	return points
}

func inReinforcingLoop(id valueobjects.NodeID, loops []Loop) bool {
	for _, l := range loops {
		if l.Type == LoopReinforcing && l.Contains(id) {
			return true
		}
	}
	return false
}

// Degrees returns the endpoint count of every node that appears on an edge.
func Degrees(edges []*entities.Edge) map[valueobjects.NodeID]int {
	degree := make(map[valueobjects.NodeID]int)
	for _, e := range edges {
		degree[e.SourceID()]++
		degree[e.TargetID()]++
	}
	return degree
}
