package analysis

import (
	"testing"

	"causalmap/domain/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyLeveragePoints(t *testing.T) {
	type wantPoint struct {
		node   string
		kind   LeverageType
		impact Impact
	}

	tests := []struct {
		name  string
		nodes []string
		links []link
		want  []wantPoint
	}{
		{
			name:  "empty graph",
			nodes: nil,
			want:  nil,
		},
		{
			name:  "hub in reinforcing loop",
			nodes: []string{"A", "B", "C"},
			links: []link{
				{"e1", "A", "B", same, false},
				{"e2", "B", "A", same, false},
				{"e3", "A", "C", same, false},
			},
			want: []wantPoint{{"A", LeverageLoopBreaker, ImpactHigh}},
		},
		{
			name:  "hub in balancing loop only",
			nodes: []string{"A", "B", "C"},
			links: []link{
				{"e1", "A", "B", same, false},
				{"e2", "B", "A", opposite, false},
				{"e3", "A", "C", same, false},
			},
			want: nil,
		},
		{
			name:  "degree two is below threshold",
			nodes: []string{"A", "B"},
			links: []link{
				{"e1", "A", "B", same, false},
				{"e2", "B", "A", same, false},
			},
			want: nil,
		},
		{
			name:  "delay rule ignores loops",
			nodes: []string{"D", "E", "F"},
			links: []link{{"e1", "D", "E", same, true}},
			want: []wantPoint{
				{"D", LeverageDelaySensitive, ImpactMedium},
				{"E", LeverageDelaySensitive, ImpactMedium},
			},
		},
		{
			name:  "both rules on one node, loop breaker first",
			nodes: []string{"B", "A", "C"},
			links: []link{
				{"e1", "A", "B", same, false},
				{"e2", "B", "A", same, false},
				{"e3", "A", "C", same, true},
			},
			want: []wantPoint{
				{"A", LeverageLoopBreaker, ImpactHigh},
				{"A", LeverageDelaySensitive, ImpactMedium},
				{"C", LeverageDelaySensitive, ImpactMedium},
			},
		},
		{
			name:  "self loop counts twice toward degree",
			nodes: []string{"X", "Y"},
			links: []link{
				{"e1", "X", "X", same, false},
				{"e2", "X", "Y", same, false},
			},
			want: []wantPoint{{"X", LeverageLoopBreaker, ImpactHigh}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := buildNodes(t, tt.nodes...)
			edges := buildEdges(t, tt.links...)
			points := IdentifyLeveragePoints(nodes, edges, DetectLoops(nodes, edges))

			require.NotNil(t, points)
			require.Len(t, points, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.node, points[i].NodeID.String())
				assert.Equal(t, w.kind, points[i].Type)
				assert.Equal(t, w.impact, points[i].Impact)
			}
		})
	}
}

func TestIdentifyLeveragePoints_IDsAndDescriptions(t *testing.T) {
	nodes := buildNodes(t, "Trust", "Lag")
	edges := buildEdges(t,
		link{"e1", "Trust", "Trust", same, false},
		link{"e2", "Trust", "Lag", same, true},
	)
	points := IdentifyLeveragePoints(nodes, edges, DetectLoops(nodes, edges))

	require.Len(t, points, 3)
	assert.Equal(t, "lp-1", points[0].ID)
	assert.Equal(t, `High-leverage intervention point: Breaking the reinforcing dynamic at "Trust" can shift system behavior`, points[0].Description)
	assert.Equal(t, "lp-2", points[1].ID)
	assert.Equal(t, `Time-sensitive variable: Early action on "Trust" is critical due to delay effects`, points[1].Description)
	assert.Equal(t, "lp-3", points[2].ID)
	assert.Equal(t, "Lag", points[2].NodeID.String())
}

func TestIdentifyLeveragePointsWithConfig_Threshold(t *testing.T) {
	nodes := buildNodes(t, "A", "B")
	edges := buildEdges(t,
		link{"e1", "A", "B", same, false},
		link{"e2", "B", "A", same, false},
	)
	loops := DetectLoops(nodes, edges)

	cfg := config.DefaultDomainConfig()
	cfg.LoopBreakerMinDegree = 2
	points := IdentifyLeveragePointsWithConfig(nodes, edges, loops, cfg)
	require.Len(t, points, 2)
	assert.Equal(t, LeverageLoopBreaker, points[1].Type)

	assert.Empty(t, IdentifyLeveragePoints(nodes, edges, loops))
}

func TestDegrees(t *testing.T) {
	edges := buildEdges(t,
		link{"e1", "A", "A", same, false},
		link{"e2", "A", "B", opposite, false},
	)
	degree := Degrees(edges)
	assert.Equal(t, 3, degree[edges[0].SourceID()])
	assert.Equal(t, 1, degree[edges[1].TargetID()])
}
