package handlers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"causalmap/application/commands"
	"causalmap/application/commands/bus"
	"causalmap/domain/analysis"
	"causalmap/domain/archetypes"
	"causalmap/domain/config"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/valueobjects"
	"causalmap/domain/events"
	"causalmap/infrastructure/persistence/memory"
	pkgerrors "causalmap/pkg/errors"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, batch ...events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, batch...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.GetEventType())
	}
	return out
}

type seqIDs struct{ n, e int }

func (s *seqIDs) NodeID() valueobjects.NodeID {
	s.n++
	return valueobjects.MustNodeID("tn" + string(rune('0'+s.n)))
}

func (s *seqIDs) EdgeID() valueobjects.EdgeID {
	s.e++
	return valueobjects.MustEdgeID("te" + string(rune('0'+s.e)))
}

type fixture struct {
	bus       *bus.CommandBus
	graphs    *memory.GraphRepository
	snapshots *memory.AnalysisStore
	published *recordingPublisher
}

func newFixture(t *testing.T, cfg *config.DomainConfig) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	catalogue, err := archetypes.DefaultCatalogue()
	require.NoError(t, err)

	f := &fixture{
		bus:       bus.NewCommandBus(bus.LoggingMiddleware(zap.NewNop().Sugar())),
		graphs:    memory.NewGraphRepository(nil),
		snapshots: memory.NewAnalysisStore(),
		published: &recordingPublisher{},
	}
	logger := zap.NewNop()
	h := Handlers{
		Graphs:  NewGraphHandler(f.graphs, f.snapshots, f.published, cfg, catalogue, &seqIDs{}, logger),
		Nodes:   NewNodeHandler(f.graphs, f.snapshots, f.published, cfg, logger),
		Edges:   NewEdgeHandler(f.graphs, f.snapshots, f.published, logger),
		Factors: NewFactorHandler(f.graphs, f.snapshots, f.published, cfg, logger),
	}
	require.NoError(t, h.Register(f.bus))
	return f
}

func (f *fixture) send(t *testing.T, cmd bus.Command) {
	t.Helper()
	require.NoError(t, f.bus.Send(context.Background(), cmd))
}

func (f *fixture) graph(t *testing.T, id string) *aggregates.Graph {
	t.Helper()
	gid, err := valueobjects.GraphIDFrom(id)
	require.NoError(t, err)
	g, err := f.graphs.GetByID(context.Background(), gid)
	require.NoError(t, err)
	return g
}

func addNode(graphID, id string) commands.AddNodeCommand {
	return commands.AddNodeCommand{GraphID: graphID, NodeID: id, Label: "Node " + id, Category: "strength", Kind: "stock"}
}

func addEdge(graphID, id, src, dst, polarity string) commands.AddEdgeCommand {
	return commands.AddEdgeCommand{GraphID: graphID, EdgeID: id, SourceID: src, TargetID: dst, Polarity: polarity}
}

func TestHandlers_GraphLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.send(t, commands.CreateGraphCommand{GraphID: "g1", Name: "Water sector"})
	err := f.bus.Send(ctx, commands.CreateGraphCommand{GraphID: "g1"})
	assert.True(t, pkgerrors.IsConflict(err))

	f.send(t, addNode("g1", "a"))
	f.send(t, addNode("g1", "b"))
	f.send(t, addEdge("g1", "e1", "a", "b", "same"))
	f.send(t, addEdge("g1", "e2", "b", "a", "opposite"))

	g := f.graph(t, "g1")
	assert.Equal(t, "Water sector", g.Name())
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 5, g.Version())

	f.send(t, commands.RemoveNodeCommand{GraphID: "g1", NodeID: "a"})
	g = f.graph(t, "g1")
	assert.Equal(t, 1, g.NodeCount())
	assert.Zero(t, g.EdgeCount(), "edges touching a are removed")

	f.send(t, commands.ClearGraphCommand{GraphID: "g1"})
	assert.Zero(t, f.graph(t, "g1").NodeCount())

	f.send(t, commands.DeleteGraphCommand{GraphID: "g1"})
	gid, _ := valueobjects.GraphIDFrom("g1")
	_, err = f.graphs.GetByID(ctx, gid)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(f.bus.Send(ctx, commands.DeleteGraphCommand{GraphID: "g1"})))

	assert.Equal(t, []string{
		events.TypeGraphCreated,
		events.TypeNodeAdded,
		events.TypeNodeAdded,
		events.TypeEdgeAdded,
		events.TypeEdgeAdded,
		events.TypeNodeRemoved,
		events.TypeGraphCleared,
		events.TypeGraphDeleted,
	}, f.published.types())
}

func TestHandlers_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	f.send(t, addNode("g1", "a"))

	tests := []struct {
		name  string
		cmd   bus.Command
		check func(error) bool
	}{
		{"unknown graph", addNode("missing", "x"), pkgerrors.IsNotFound},
		{"duplicate node", addNode("g1", "a"), pkgerrors.IsConflict},
		{"bad category", commands.AddNodeCommand{GraphID: "g1", NodeID: "x", Label: "X", Category: "risk", Kind: "stock"}, pkgerrors.IsValidation},
		{"missing label", commands.AddNodeCommand{GraphID: "g1", NodeID: "x", Category: "threat", Kind: "flow"}, pkgerrors.IsValidation},
		{"dangling edge", addEdge("g1", "e1", "a", "ghost", "same"), pkgerrors.IsReference},
		{"bad polarity", addEdge("g1", "e1", "a", "a", "inverse"), pkgerrors.IsValidation},
		{"remove unknown node", commands.RemoveNodeCommand{GraphID: "g1", NodeID: "ghost"}, pkgerrors.IsNotFound},
		{"remove unknown edge", commands.RemoveEdgeCommand{GraphID: "g1", EdgeID: "ghost"}, pkgerrors.IsNotFound},
		{"update unknown edge", commands.UpdateEdgeCommand{GraphID: "g1", EdgeID: "ghost"}, pkgerrors.IsNotFound},
		{"remove unknown factor", commands.RemoveFactorCommand{GraphID: "g1", FactorID: "ghost"}, pkgerrors.IsNotFound},
		{"unknown archetype", commands.ApplyArchetypeCommand{GraphID: "g1", ArchetypeID: "ghost"}, pkgerrors.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.graph(t, "g1").Version()
			err := f.bus.Send(ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Equal(t, before, f.graph(t, "g1").Version(), "rejected commands leave the graph unchanged")
		})
	}
}

func TestHandlers_UpdateEdge(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	f.send(t, addNode("g1", "a"))
	f.send(t, addNode("g1", "b"))
	f.send(t, addEdge("g1", "e1", "a", "b", "same"))

	polarity, delay, target := "opposite", true, "a"
	f.send(t, commands.UpdateEdgeCommand{GraphID: "g1", EdgeID: "e1", Polarity: &polarity, HasDelay: &delay, TargetID: &target})

	e, ok := f.graph(t, "g1").Edge(valueobjects.MustEdgeID("e1"))
	require.True(t, ok)
	assert.Equal(t, valueobjects.PolarityOpposite, e.Polarity())
	assert.True(t, e.HasDelay())
	assert.True(t, e.IsSelfLoop())

	ghost := "ghost"
	err := f.bus.Send(context.Background(), commands.UpdateEdgeCommand{GraphID: "g1", EdgeID: "e1", SourceID: &ghost})
	assert.True(t, pkgerrors.IsReference(err))
}

func TestHandlers_UpdateNode(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	f.send(t, addNode("g1", "a"))

	label, kind := "Groundwater stock", "flow"
	f.send(t, commands.UpdateNodeCommand{GraphID: "g1", NodeID: "a", Label: &label, Kind: &kind})

	n, ok := f.graph(t, "g1").Node(valueobjects.MustNodeID("a"))
	require.True(t, ok)
	assert.Equal(t, label, n.Label().String())
	assert.Equal(t, valueobjects.NodeKindFlow, n.Kind())
	assert.Equal(t, valueobjects.CategoryStrength, n.Category())
}

func TestHandlers_Factors(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	f.send(t, commands.AddFactorCommand{
		GraphID:            "g1",
		FactorID:           "f1",
		Category:           "threat",
		Text:               "Recurring drought in the northern provinces",
		VariableType:       "auxiliary",
		TimeHorizon:        "long-term",
		PoliticalDimension: "resources",
	})
	f.send(t, commands.AddNodeFromFactorCommand{GraphID: "g1", FactorID: "f1", NodeID: "n1"})

	n, ok := f.graph(t, "g1").Node(valueobjects.MustNodeID("n1"))
	require.True(t, ok)
	assert.Equal(t, valueobjects.NodeKindDecision, n.Kind())
	assert.Equal(t, valueobjects.CategoryThreat, n.Category())

	text := "Recurring drought"
	f.send(t, commands.UpdateFactorCommand{GraphID: "g1", FactorID: "f1", Text: &text})
	factor, ok := f.graph(t, "g1").Factor(valueobjects.MustFactorID("f1"))
	require.True(t, ok)
	assert.Equal(t, text, factor.Text())

	f.send(t, commands.RemoveFactorCommand{GraphID: "g1", FactorID: "f1"})
	g := f.graph(t, "g1")
	assert.Zero(t, g.FactorCount())
	assert.Zero(t, g.NodeCount(), "nodes created from the factor go with it")
}

func TestHandlers_ApplyArchetype(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	f.send(t, commands.ApplyArchetypeCommand{GraphID: "g1", ArchetypeID: "fixes-that-fail"})

	g := f.graph(t, "g1")
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Contains(t, f.published.types(), events.TypeArchetypeApplied)

	limited := config.DefaultDomainConfig()
	limited.MaxNodesPerGraph = 2
	f = newFixture(t, limited)
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	err := f.bus.Send(context.Background(), commands.ApplyArchetypeCommand{GraphID: "g1", ArchetypeID: "fixes-that-fail"})
	assert.True(t, pkgerrors.IsLimitExceeded(err))
	assert.Zero(t, f.graph(t, "g1").NodeCount())
}

func TestHandlers_InvalidateSnapshot(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})

	gid, _ := valueobjects.GraphIDFrom("g1")
	require.NoError(t, f.snapshots.Put(ctx, gid, &analysis.Snapshot{GraphVersion: 1}))

	f.send(t, addNode("g1", "a"))
	_, current, err := f.snapshots.Get(ctx, gid)
	require.NoError(t, err)
	assert.False(t, current)
}

func TestHandlers_PublishFailureKeepsMutation(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, commands.CreateGraphCommand{GraphID: "g1"})
	f.published.err = errors.New("bus down")

	f.send(t, addNode("g1", "a"))
	assert.Equal(t, 1, f.graph(t, "g1").NodeCount())
}
