package analysis

import (
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// Summary holds the dashboard figures of an analysis.
type Summary struct {
	Nodes             int                           `json:"nodes"`
	Edges             int                           `json:"edges"`
	DelayedEdges      int                           `json:"delayed_edges"`
	Factors           int                           `json:"factors"`
	NodesByCategory   map[valueobjects.Category]int `json:"nodes_by_category"`
	FactorsByCategory map[valueobjects.Category]int `json:"factors_by_category"`
	Loops             LoopCounts                    `json:"loops"`
	Cycles            CycleStats                    `json:"cycles"`
	LeverageByType    map[LeverageType]int          `json:"leverage_by_type"`
	Options           int                           `json:"options"`
}

type LoopCounts struct {
	Total       int `json:"total"`
	Reinforcing int `json:"reinforcing"`
	Balancing   int `json:"balancing"`
}

// CycleStats describes the lengths of the detected loops.
type CycleStats struct {
	Shortest      int     `json:"shortest"`
	Longest       int     `json:"longest"`
	AverageLength float64 `json:"average_length"`
	SelfLoops     int     `json:"self_loops"`
}

// AnalyzeCycles computes length statistics over the loops. It is all zero for
// an empty list.
func AnalyzeCycles(loops []Loop) CycleStats {
	if len(loops) == 0 {
		return CycleStats{}
	}

	stats := CycleStats{
		Shortest: len(loops[0].Nodes),
		Longest:  len(loops[0].Nodes),
	}
	total := 0
	for _, l := range loops {
		length := len(l.Nodes)
		total += length
		if length == 1 {
			stats.SelfLoops++
		}
		if length < stats.Shortest {
			stats.Shortest = length
		}
		if length > stats.Longest {
			stats.Longest = length
		}
	}
	stats.AverageLength = float64(total) / float64(len(loops))
	return stats
}

// Summarize computes the dashboard figures for a finished analysis.
func Summarize(nodes []*entities.Node, edges []*entities.Edge, loops []Loop, points []LeveragePoint, options []StrategicOption) Summary {
	s := Summary{
		Nodes:             len(nodes),
		Edges:             len(edges),
		NodesByCategory:   categoryCounts(),
		FactorsByCategory: categoryCounts(),
		Cycles:            AnalyzeCycles(loops),
		LeverageByType:    make(map[LeverageType]int, len(LeverageTypes)),
		Options:           len(options),
	}
	for _, n := range nodes {
		s.NodesByCategory[n.Category()]++
	}
	for _, e := range edges {
		if e.HasDelay() {
			s.DelayedEdges++
		}
	}

	s.Loops.Total = len(loops)
	s.Loops.Reinforcing, s.Loops.Balancing = CountLoops(loops)

	for _, t := range LeverageTypes {
		s.LeverageByType[t] = 0
	}
	for _, p := range points {
		s.LeverageByType[p.Type]++
	}
	return s
}

// AddFactors sets the factor figures, which do not take part in the analysis
// itself. Earlier figures are replaced.
func (s *Summary) AddFactors(factors []*entities.Factor) {
	s.Factors = len(factors)
	s.FactorsByCategory = categoryCounts()
	for _, f := range factors {
		s.FactorsByCategory[f.Category()]++
	}
}

func categoryCounts() map[valueobjects.Category]int {
	counts := make(map[valueobjects.Category]int, len(valueobjects.Categories))
	for _, c := range valueobjects.Categories {
		counts[c] = 0
	}
	return counts
}
