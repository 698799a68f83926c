package analysis

import (
	"testing"

	"causalmap/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loopsOf(types ...LoopType) []Loop {
	loops := make([]Loop, len(types))
	for i, lt := range types {
		loops[i] = Loop{Type: lt}
	}
	return loops
}

func TestGenerateStrategicOptions_Aggregate(t *testing.T) {
	tests := []struct {
		name  string
		loops []Loop
		want  int
	}{
		{"no loops", nil, 0},
		{"more reinforcing", loopsOf(LoopReinforcing, LoopReinforcing, LoopBalancing), 1},
		{"equal", loopsOf(LoopReinforcing, LoopBalancing), 0},
		{"more balancing", loopsOf(LoopBalancing, LoopBalancing, LoopReinforcing), 0},
		{"only reinforcing", loopsOf(LoopReinforcing), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := GenerateStrategicOptions(nil, nil, tt.loops)
			require.NotNil(t, options)
			assert.Len(t, options, tt.want)
		})
	}
}

func TestGenerateStrategicOptions_AggregateContent(t *testing.T) {
	options := GenerateStrategicOptions(nil, nil, loopsOf(LoopReinforcing, LoopReinforcing, LoopBalancing))
	require.Len(t, options, 1)

	o := options[0]
	assert.Equal(t, "option-1", o.ID)
	assert.Equal(t, "Strengthen Balancing Feedback Mechanisms", o.Title)
	assert.Equal(t, "The system is dominated by reinforcing loops (2 reinforcing vs 1 balancing). "+
		"Add self-correcting mechanisms such as performance reviews, stakeholder consultation processes, "+
		"or adaptive management frameworks.", o.Description)
	assert.NotNil(t, o.LeveragePoints)
	assert.Empty(t, o.LeveragePoints)
	assert.Equal(t, FeasibilityMedium, o.Feasibility)
	assert.Equal(t, "Medium-term (12-24 months)", o.PoliticalEconomy.TimeHorizon)
}

func TestGenerateStrategicOptions_PerPoint(t *testing.T) {
	nodes := buildNodes(t, "Elite capture", "Skills pipeline")
	points := []LeveragePoint{
		{ID: "lp-1", NodeID: valueobjects.MustNodeID("Elite capture"), Type: LeverageLoopBreaker, Impact: ImpactHigh},
		{ID: "lp-2", NodeID: valueobjects.MustNodeID("ghost"), Type: LeverageDelaySensitive, Impact: ImpactMedium},
		{ID: "lp-3", NodeID: valueobjects.MustNodeID("Skills pipeline"), Type: LeveragePolarityReversal, Impact: ImpactLow},
		{ID: "lp-4", NodeID: valueobjects.MustNodeID("Skills pipeline"), Type: LeverageDelaySensitive, Impact: ImpactMedium},
		{ID: "lp-5", NodeID: valueobjects.MustNodeID("Elite capture"), Type: LeverageLoopBreaker, Impact: ImpactHigh},
	}

	options := GenerateStrategicOptions(points, nodes, loopsOf(LoopBalancing))
	require.Len(t, options, 3)

	assert.Equal(t, "option-1", options[0].ID)
	assert.Equal(t, "Interrupt Reinforcing Dynamic at Elite capture", options[0].Title)
	assert.Equal(t, []string{"lp-1"}, options[0].LeveragePoints)
	assert.Equal(t, FeasibilityMedium, options[0].Feasibility)
	assert.Equal(t, PoliticalEconomyProfile{
		PowerAlignment:        "Requires coalition of stakeholders benefiting from system stability",
		InstitutionalCapacity: "Medium - needs monitoring and enforcement mechanisms",
		TimeHorizon:           "Medium-term (6-18 months for visible effects)",
		StakeholderCoalition:  "Build alliance between reform champions and those experiencing negative externalities",
	}, options[0].PoliticalEconomy)
	assert.Contains(t, options[0].Description, "accountability structures, resource caps, or counter-incentives")

	assert.Equal(t, "option-2", options[1].ID)
	assert.Equal(t, "Early Investment in Skills pipeline", options[1].Title)
	assert.Equal(t, []string{"lp-4"}, options[1].LeveragePoints)
	assert.Equal(t, FeasibilityLow, options[1].Feasibility)
	assert.Equal(t, "Long-term (18+ months before results materialize)", options[1].PoliticalEconomy.TimeHorizon)
	assert.Equal(t, "High - requires sustained investment and long-term commitment", options[1].PoliticalEconomy.InstitutionalCapacity)

	assert.Equal(t, "option-3", options[2].ID, "duplicate points each yield an option")
	assert.Equal(t, []string{"lp-5"}, options[2].LeveragePoints)
}

func TestGenerateStrategicOptions_AggregateLast(t *testing.T) {
	nodes := buildNodes(t, "A")
	points := []LeveragePoint{{ID: "lp-1", NodeID: valueobjects.MustNodeID("A"), Type: LeverageDelaySensitive}}

	options := GenerateStrategicOptions(points, nodes, loopsOf(LoopReinforcing))
	require.Len(t, options, 2)
	assert.Equal(t, "Early Investment in A", options[0].Title)
	assert.Equal(t, "option-2", options[1].ID)
	assert.Equal(t, "Strengthen Balancing Feedback Mechanisms", options[1].Title)
}
