package analysis

import (
	"causalmap/domain/config"
	"causalmap/domain/core/entities"
)

// Run executes loop detection, leverage identification and option synthesis
// in that order and summarises the result. The caller stamps graph identity,
// version and time on the returned snapshot.
func Run(nodes []*entities.Node, edges []*entities.Edge) Snapshot {
	return RunWithConfig(nodes, edges, config.DefaultDomainConfig())
}

// RunWithConfig is Run with the leverage threshold taken from cfg.
func RunWithConfig(nodes []*entities.Node, edges []*entities.Edge, cfg *config.DomainConfig) Snapshot {
	loops := DetectLoops(nodes, edges)
	points := IdentifyLeveragePointsWithConfig(nodes, edges, loops, cfg)
	options := GenerateStrategicOptions(points, nodes, loops)

	return Snapshot{
		Loops:          loops,
		LeveragePoints: points,
		Options:        options,
		Summary:        Summarize(nodes, edges, loops, points, options),
	}
}
