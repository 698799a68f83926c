// Package analysis derives feedback loops, leverage points and strategic
// options from a causal graph. Every function here is pure: it reads the
// nodes and edges it is given and recomputes from scratch.
package analysis

import (
	"time"

	"causalmap/domain/core/valueobjects"
)

// LoopType classifies a feedback loop by the parity of its opposite links.
type LoopType string

const (
	LoopReinforcing LoopType = "reinforcing"
	LoopBalancing   LoopType = "balancing"
)

func (t LoopType) Valid() bool {
	switch t {
	case LoopReinforcing, LoopBalancing:
		return true
	}
	return false
}

// Title is the capitalised form used in loop descriptions.
func (t LoopType) Title() string {
	switch t {
	case LoopReinforcing:
		return "Reinforcing"
	case LoopBalancing:
		return "Balancing"
	}
	return string(t)
}

// Loop is a closed causal path. Nodes start at the node the search re-entered
// and do not repeat it at the end.
type Loop struct {
	ID          string                `json:"id"`
	Nodes       []valueobjects.NodeID `json:"nodes"`
	Type        LoopType              `json:"type"`
	Description string                `json:"description"`
}

// Contains reports whether the node is a member of the loop.
func (l Loop) Contains(id valueobjects.NodeID) bool {
	for _, n := range l.Nodes {
		if n.Equals(id) {
			return true
		}
	}
	return false
}

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

type LeverageType string

const (
	LeverageLoopBreaker      LeverageType = "loop-breaker"
	LeverageDelaySensitive   LeverageType = "delay-sensitive"
	LeveragePolarityReversal LeverageType = "polarity-reversal"
)

// LeverageTypes lists every leverage type in reporting order.
var LeverageTypes = []LeverageType{LeverageLoopBreaker, LeverageDelaySensitive, LeveragePolarityReversal}

func (t LeverageType) Valid() bool {
	switch t {
	case LeverageLoopBreaker, LeverageDelaySensitive, LeveragePolarityReversal:
		return true
	}
	return false
}

// LeveragePoint is a node where an intervention is likely to pay off.
type LeveragePoint struct {
	ID          string              `json:"id"`
	NodeID      valueobjects.NodeID `json:"node_id"`
	Impact      Impact              `json:"impact"`
	Type        LeverageType        `json:"type"`
	Description string              `json:"description"`
}

type Feasibility string

const (
	FeasibilityHigh   Feasibility = "high"
	FeasibilityMedium Feasibility = "medium"
	FeasibilityLow    Feasibility = "low"
)

// PoliticalEconomyProfile describes what an intervention demands politically.
type PoliticalEconomyProfile struct {
	PowerAlignment        string `json:"power_alignment"`
	InstitutionalCapacity string `json:"institutional_capacity"`
	TimeHorizon           string `json:"time_horizon"`
	StakeholderCoalition  string `json:"stakeholder_coalition"`
}

// StrategicOption is a narrative intervention strategy.
type StrategicOption struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	LeveragePoints   []string                `json:"leverage_points"`
	PoliticalEconomy PoliticalEconomyProfile `json:"political_economy"`
	Feasibility      Feasibility             `json:"feasibility"`
}

// Snapshot is one complete analysis of a graph at a given version.
type Snapshot struct {
	GraphID        string            `json:"graph_id,omitempty"`
	GraphVersion   int               `json:"graph_version"`
	Checksum       string            `json:"checksum,omitempty"`
	Loops          []Loop            `json:"loops"`
	LeveragePoints []LeveragePoint   `json:"leverage_points"`
	Options        []StrategicOption `json:"options"`
	Summary        Summary           `json:"summary"`
	ComputedAt     time.Time         `json:"computed_at"`
}

// Stale reports whether the snapshot was computed for an older graph version.
func (s *Snapshot) Stale(graphVersion int) bool {
	return s == nil || s.GraphVersion != graphVersion
}
