package analysis

import (
	"fmt"

	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

var (
	loopBreakerProfile = PoliticalEconomyProfile{
		PowerAlignment:        "Requires coalition of stakeholders benefiting from system stability",
		InstitutionalCapacity: "Medium - needs monitoring and enforcement mechanisms",
		TimeHorizon:           "Medium-term (6-18 months for visible effects)",
		StakeholderCoalition:  "Build alliance between reform champions and those experiencing negative externalities",
	}
	delayProfile = PoliticalEconomyProfile{
		PowerAlignment:        "May face resistance from short-term oriented actors",
		InstitutionalCapacity: "High - requires sustained investment and long-term commitment",
		TimeHorizon:           "Long-term (18+ months before results materialize)",
		StakeholderCoalition:  "Engage future-oriented stakeholders and technical experts",
	}
	balancingProfile = PoliticalEconomyProfile{
		PowerAlignment:        "Requires buy-in from those currently benefiting from unchecked growth",
		InstitutionalCapacity: "Medium - needs new governance structures",
		TimeHorizon:           "Medium-term (12-24 months)",
		StakeholderCoalition:  "Form coalition around sustainable development principles",
	}
)

const (
	loopBreakerNarrative = "Introduce a balancing mechanism to stabilize the reinforcing feedback loop. " +
		"This could involve creating accountability structures, resource caps, or counter-incentives that prevent runaway effects."
	delayNarrative = "Address this critical bottleneck before delays compound. " +
		"Delays in this variable create system-wide ripple effects, so proactive capacity building is essential."
)

// GenerateStrategicOptions turns leverage points into narrative options, one
// per loop-breaker or delay-sensitive point whose node is known, in point
// order. When reinforcing loops outnumber balancing ones a system-wide option
// is appended. Nothing is deduplicated.
func GenerateStrategicOptions(points []LeveragePoint, nodes []*entities.Node, loops []Loop) []StrategicOption {
	labels := make(map[valueobjects.NodeID]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID()] = n.Label().String()
	}

	options := []StrategicOption{}
	add := func(title, description string, refs []string, profile PoliticalEconomyProfile, feasibility Feasibility) {
		options = append(options, StrategicOption{
			ID:               fmt.Sprintf("option-%d", len(options)+1),
			Title:            title,
			Description:      description,
			LeveragePoints:   refs,
			PoliticalEconomy: profile,
			Feasibility:      feasibility,
		})
	}

	for _, p := range points {
		label, ok := labels[p.NodeID]
		if !ok {
			continue
		}
		switch p.Type {
		case LeverageLoopBreaker:
			add("Interrupt Reinforcing Dynamic at "+label, loopBreakerNarrative,
				[]string{p.ID}, loopBreakerProfile, FeasibilityMedium)
		case LeverageDelaySensitive:
			add("Early Investment in "+label, delayNarrative,
				[]string{p.ID}, delayProfile, FeasibilityLow)
		case LeveragePolarityReversal:
			// no narrative template
		}
	}

	reinforcing, balancing := CountLoops(loops)
	if reinforcing > balancing {
		add("Strengthen Balancing Feedback Mechanisms",
			fmt.Sprintf("The system is dominated by reinforcing loops (%d reinforcing vs %d balancing). "+
				"Add self-correcting mechanisms such as performance reviews, stakeholder consultation processes, "+
				"or adaptive management frameworks.", reinforcing, balancing),
			[]string{}, balancingProfile, FeasibilityMedium)
	}
	return options
}

// CountLoops returns the number of reinforcing and balancing loops.
func CountLoops(loops []Loop) (reinforcing, balancing int) {
	for _, l := range loops {
		switch l.Type {
		case LoopReinforcing:
			reinforcing++
		case LoopBalancing:
			balancing++
		}
	}
	return reinforcing, balancing
}
