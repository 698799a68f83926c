package aggregates

import (
	"fmt"
	"testing"

	"causalmap/domain/analysis"
	"causalmap/domain/config"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
	"causalmap/domain/events"
	pkgerrors "causalmap/pkg/errors"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph("Test", "", config.DefaultDomainConfig())
	require.NoError(t, err)
	return g
}

func mustNode(t testing.TB, id string) *entities.Node {
	t.Helper()
	label, err := valueobjects.NewLabel("Label " + id)
	require.NoError(t, err)
	n, err := entities.NewNode(valueobjects.MustNodeID(id), label, valueobjects.CategoryStrength, valueobjects.NodeKindStock)
	require.NoError(t, err)
	return n
}

func mustEdge(t testing.TB, id, src, dst string, polarity valueobjects.Polarity, delay bool) *entities.Edge {
	t.Helper()
	e, err := entities.NewEdge(valueobjects.MustEdgeID(id), valueobjects.MustNodeID(src), valueobjects.MustNodeID(dst), polarity, delay)
	require.NoError(t, err)
	return e
}

func mustFactor(t testing.TB, id, text string) *entities.Factor {
	t.Helper()
	f, err := entities.NewFactor(valueobjects.MustFactorID(id), entities.FactorSpec{
		Category:           valueobjects.CategoryThreat,
		Text:               text,
		VariableType:       valueobjects.VariableTypeAuxiliary,
		TimeHorizon:        valueobjects.TimeHorizonShort,
		PoliticalDimension: valueobjects.PoliticalDimensionPower,
		Stakeholder:        "Ministry",
	}, nil)
	require.NoError(t, err)
	return f
}

func nodeIDs(nodes []*entities.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID().String()
	}
	return out
}

func edgeIDs(edges []*entities.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.ID().String()
	}
	return out
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph("  ", "desc", nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDomainConfig().DefaultGraphName, g.Name())
	assert.Equal(t, 1, g.Version())

	evts := g.GetUncommittedEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeGraphCreated, evts[0].GetEventType())
}

func TestGraph_AddNode(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(g *Graph)
		node    func(t *testing.T) *entities.Node
		check   func(error) bool
		wantErr bool
	}{
		{
			name: "adds node",
			node: func(t *testing.T) *entities.Node { return mustNode(t, "A") },
		},
		{
			name:    "nil node",
			node:    func(*testing.T) *entities.Node { return nil },
			check:   pkgerrors.IsValidation,
			wantErr: true,
		},
		{
			name:    "duplicate id",
			setup:   func(g *Graph) { _ = g.AddNode(mustNode(t, "A")) },
			node:    func(t *testing.T) *entities.Node { return mustNode(t, "A") },
			check:   pkgerrors.IsConflict,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t)
			if tt.setup != nil {
				tt.setup(g)
			}
			err := g.AddNode(tt.node(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, tt.check(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, g.HasNode(valueobjects.MustNodeID("A")))
		})
	}
}

func TestGraph_NodeLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxNodesPerGraph = 2
	g, err := NewGraph("small", "", cfg)
	require.NoError(t, err)

	require.NoError(t, g.AddNode(mustNode(t, "A")))
	require.NoError(t, g.AddNode(mustNode(t, "B")))
	err = g.AddNode(mustNode(t, "C"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsLimitExceeded(err))
	assert.Equal(t, 2, g.NodeCount())
}

func TestGraph_AddEdge_DanglingReference(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddNode(mustNode(t, "A")))
	before := g.Version()

	err := g.AddEdge(mustEdge(t, "e1", "A", "ghost", valueobjects.PolaritySame, false))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsReference(err))

	err = g.AddEdge(mustEdge(t, "e2", "ghost", "A", valueobjects.PolaritySame, false))
	assert.True(t, pkgerrors.IsReference(err))

	assert.Zero(t, g.EdgeCount(), "rejected edges must not persist")
	assert.Equal(t, before, g.Version())
}

func TestGraph_AddEdge_SelfLoop(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddNode(mustNode(t, "X")))
	require.NoError(t, g.AddEdge(mustEdge(t, "e1", "X", "X", valueobjects.PolarityOpposite, false)))

	cfg := config.DefaultDomainConfig()
	cfg.AllowSelfLoops = false
	strict, err := NewGraph("strict", "", cfg)
	require.NoError(t, err)
	require.NoError(t, strict.AddNode(mustNode(t, "X")))
	err = strict.AddEdge(mustEdge(t, "e1", "X", "X", valueobjects.PolarityOpposite, false))
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestGraph_RemoveNode_CascadesEdges(t *testing.T) {
	g := newTestGraph(t)
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, g.AddNode(mustNode(t, id)))
	}
	require.NoError(t, g.AddEdge(mustEdge(t, "ab", "A", "B", valueobjects.PolaritySame, false)))
	require.NoError(t, g.AddEdge(mustEdge(t, "bc", "B", "C", valueobjects.PolaritySame, false)))
	require.NoError(t, g.AddEdge(mustEdge(t, "ca", "C", "A", valueobjects.PolarityOpposite, false)))
	require.NoError(t, g.AddEdge(mustEdge(t, "bb", "B", "B", valueobjects.PolaritySame, false)))
	g.MarkEventsAsCommitted()

	require.NoError(t, g.RemoveNode(valueobjects.MustNodeID("B")))

	assert.Equal(t, []string{"A", "C"}, nodeIDs(g.Nodes()))
	assert.Equal(t, []string{"ca"}, edgeIDs(g.Edges()))
	assert.Empty(t, analysis.DetectLoops(g.Nodes(), g.Edges()))

	evts := g.GetUncommittedEvents()
	require.Len(t, evts, 1)
	removed, ok := evts[0].(events.NodeRemoved)
	require.True(t, ok)
	assert.Len(t, removed.RemovedEdges, 3)
}

func TestGraph_StrictNotFound(t *testing.T) {
	g := newTestGraph(t)
	label := "x"

	tests := []struct {
		name string
		op   func() error
	}{
		{"remove node", func() error { return g.RemoveNode(valueobjects.MustNodeID("nope")) }},
		{"update node", func() error {
			return g.UpdateNode(valueobjects.MustNodeID("nope"), entities.NodePatch{Label: &label})
		}},
		{"remove edge", func() error { return g.RemoveEdge(valueobjects.MustEdgeID("nope")) }},
		{"update edge", func() error { return g.UpdateEdge(valueobjects.MustEdgeID("nope"), entities.EdgePatch{}) }},
		{"remove factor", func() error { return g.RemoveFactor(valueobjects.MustFactorID("nope")) }},
		{"update factor", func() error { return g.UpdateFactor(valueobjects.MustFactorID("nope"), entities.FactorPatch{}) }},
		{"node from factor", func() error {
			_, err := g.AddNodeFromFactor(valueobjects.MustFactorID("nope"), valueobjects.NewNodeID())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			require.Error(t, err)
			assert.True(t, pkgerrors.IsNotFound(err))
		})
	}
	assert.Equal(t, 1, g.Version())
}

func TestGraph_UpdateEdge(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddNode(mustNode(t, "A")))
	require.NoError(t, g.AddNode(mustNode(t, "B")))
	require.NoError(t, g.AddEdge(mustEdge(t, "e1", "A", "B", valueobjects.PolaritySame, false)))

	opposite := valueobjects.PolarityOpposite
	delay := true
	require.NoError(t, g.UpdateEdge(valueobjects.MustEdgeID("e1"), entities.EdgePatch{Polarity: &opposite, HasDelay: &delay}))

	e, ok := g.Edge(valueobjects.MustEdgeID("e1"))
	require.True(t, ok)
	assert.Equal(t, valueobjects.PolarityOpposite, e.Polarity())
	assert.True(t, e.HasDelay())

	ghost := valueobjects.MustNodeID("ghost")
	err := g.UpdateEdge(valueobjects.MustEdgeID("e1"), entities.EdgePatch{TargetID: &ghost})
	assert.True(t, pkgerrors.IsReference(err))
	e, _ = g.Edge(valueobjects.MustEdgeID("e1"))
	assert.Equal(t, "B", e.TargetID().String(), "rejected patch leaves edge untouched")

	bad := valueobjects.Polarity("sideways")
	err = g.UpdateEdge(valueobjects.MustEdgeID("e1"), entities.EdgePatch{Polarity: &bad})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestGraph_Factors(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddFactor(mustFactor(t, "f1", "Rising youth unemployment in secondary cities across the region")))
	require.NoError(t, g.AddFactor(mustFactor(t, "f2", "Donor fatigue")))
	assert.True(t, pkgerrors.IsConflict(g.AddFactor(mustFactor(t, "f1", "dup"))))

	n1, err := g.AddNodeFromFactor(valueobjects.MustFactorID("f1"), valueobjects.MustNodeID("n1"))
	require.NoError(t, err)
	assert.Equal(t, "Rising youth unemployment in secondary cities acro", n1.Label().String())
	assert.Equal(t, valueobjects.NodeKindDecision, n1.Kind())
	assert.Equal(t, valueobjects.CategoryThreat, n1.Category())

	_, err = g.AddNodeFromFactor(valueobjects.MustFactorID("f1"), valueobjects.MustNodeID("n2"))
	require.NoError(t, err)
	_, err = g.AddNodeFromFactor(valueobjects.MustFactorID("f2"), valueobjects.MustNodeID("n3"))
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(mustEdge(t, "e1", "n1", "n3", valueobjects.PolaritySame, false)))
	require.NoError(t, g.AddEdge(mustEdge(t, "e2", "n3", "n3", valueobjects.PolaritySame, false)))

	require.NoError(t, g.RemoveFactor(valueobjects.MustFactorID("f1")))

	assert.Equal(t, []string{"n3"}, nodeIDs(g.Nodes()))
	assert.Equal(t, []string{"e2"}, edgeIDs(g.Edges()))
	assert.Equal(t, 1, g.FactorCount())
	assert.NoError(t, g.Validate())
}

func TestGraph_Clear(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddFactor(mustFactor(t, "f1", "text")))
	require.NoError(t, g.AddNode(mustNode(t, "A")))
	require.NoError(t, g.AddEdge(mustEdge(t, "e1", "A", "A", valueobjects.PolaritySame, false)))

	g.Clear()

	assert.Zero(t, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
	assert.Zero(t, g.FactorCount())
	evts := g.GetUncommittedEvents()
	cleared, ok := evts[len(evts)-1].(events.GraphCleared)
	require.True(t, ok)
	assert.Equal(t, 1, cleared.NodesRemoved)
}

func TestGraph_Clone(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddNode(mustNode(t, "A")))

	c := g.Clone()
	require.NoError(t, c.AddNode(mustNode(t, "B")))
	label := "Renamed"
	require.NoError(t, c.UpdateNode(valueobjects.MustNodeID("A"), entities.NodePatch{Label: &label}))

	assert.Equal(t, 1, g.NodeCount())
	a, _ := g.Node(valueobjects.MustNodeID("A"))
	assert.Equal(t, "Label A", a.Label().String())
	assert.Len(t, c.GetUncommittedEvents(), 2, "clones start without pending events")
}

func TestGraph_InsertionOrder(t *testing.T) {
	g := newTestGraph(t)
	ids := []string{"z", "a", "m", "b"}
	for _, id := range ids {
		require.NoError(t, g.AddNode(mustNode(t, id)))
	}
	require.NoError(t, g.RemoveNode(valueobjects.MustNodeID("a")))
	require.NoError(t, g.AddNode(mustNode(t, "a")))
	assert.Equal(t, []string{"z", "m", "b", "a"}, nodeIDs(g.Nodes()))
}

// After any sequence of node removals no edge references a missing node and
// no detected loop passes through a removed one.
func TestGraph_CascadeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("removing nodes never leaves dangling edges or loops", prop.ForAll(
		func(n int, pairs []int, removals []int) bool {
			g, _ := NewGraph("prop", "", nil)
			for i := 0; i < n; i++ {
				_ = g.AddNode(mustNode(t, fmt.Sprintf("n%d", i)))
			}
			for i := 0; i+1 < len(pairs); i += 2 {
				src := fmt.Sprintf("n%d", pairs[i]%n)
				dst := fmt.Sprintf("n%d", pairs[i+1]%n)
				_ = g.AddEdge(mustEdge(t, fmt.Sprintf("e%d", i), src, dst, valueobjects.PolaritySame, false))
			}
			removed := make(map[valueobjects.NodeID]bool)
			for _, r := range removals {
				id := valueobjects.MustNodeID(fmt.Sprintf("n%d", r%n))
				_ = g.RemoveNode(id)
				removed[id] = true
			}
			for _, e := range g.Edges() {
				if !g.HasNode(e.SourceID()) || !g.HasNode(e.TargetID()) {
					return false
				}
			}
			for _, loop := range analysis.DetectLoops(g.Nodes(), g.Edges()) {
				for _, id := range loop.Nodes {
					if removed[id] {
						return false
					}
				}
			}
			return g.Validate() == nil
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

func TestGraph_VisibleTo(t *testing.T) {
	owned := newTestGraph(t)
	owned.AssignOwner(" alice ")
	unowned := newTestGraph(t)

	tests := []struct {
		name  string
		graph *Graph
		user  string
		want  bool
	}{
		{"owner", owned, "alice", true},
		{"other user", owned, "bob", false},
		{"no user", owned, "", true},
		{"unowned graph", unowned, "bob", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.graph.VisibleTo(tt.user))
		})
	}
	assert.Equal(t, "alice", owned.Clone().OwnerID())
}
