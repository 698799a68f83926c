package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"causalmap/application/queries"
	"causalmap/application/queries/bus"
	"causalmap/application/services"
	"causalmap/domain/analysis"
	"causalmap/domain/archetypes"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
	"causalmap/infrastructure/persistence/memory"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

func setup(t *testing.T) (*bus.QueryBus, *memory.GraphRepository) {
	t.Helper()
	graphs := memory.NewGraphRepository(nil)
	snapshots := memory.NewAnalysisStore()
	catalogue, err := archetypes.DefaultCatalogue()
	require.NoError(t, err)

	analyzer := services.NewAnalysisService(graphs, snapshots, nil, nil, nil, nil)
	b := bus.NewQueryBus()
	require.NoError(t, NewQueryHandlers(graphs, analyzer, catalogue).Register(b))
	return b, graphs
}

func seedGraph(t *testing.T, graphs *memory.GraphRepository, id string) {
	t.Helper()
	gid, err := valueobjects.GraphIDFrom(id)
	require.NoError(t, err)
	g, err := aggregates.NewGraphWithID(gid, "Graph "+id, "", nil)
	require.NoError(t, err)

	for _, nid := range []string{"a", "b", "c"} {
		label, err := valueobjects.NewLabel("Node " + nid)
		require.NoError(t, err)
		n, err := entities.NewNode(valueobjects.MustNodeID(nid), label, valueobjects.CategoryOpportunity, valueobjects.NodeKindFlow)
		require.NoError(t, err)
		require.NoError(t, g.AddNode(n))
	}
	for i, pair := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}} {
		e, err := entities.NewEdge(valueobjects.MustEdgeID(fmt.Sprintf("e%d", i+1)),
			valueobjects.MustNodeID(pair[0]), valueobjects.MustNodeID(pair[1]), valueobjects.PolaritySame, i == 2)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(e))
	}
	require.NoError(t, graphs.Create(context.Background(), g))
}

func TestQueries_GetGraph(t *testing.T) {
	b, graphs := setup(t)
	seedGraph(t, graphs, "g1")

	view, err := bus.Ask[*queries.GraphView](context.Background(), b, queries.GetGraphQuery{GraphID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, "Graph g1", view.Name)
	assert.Equal(t, 3, view.NodeCount)
	require.Len(t, view.Edges, 3)
	assert.Equal(t, "e1", view.Edges[0].ID)
	assert.True(t, view.Edges[2].HasDelay)
	assert.NotEmpty(t, view.CreatedAt)

	_, err = b.Ask(context.Background(), queries.GetGraphQuery{GraphID: "missing"})
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = b.Ask(context.Background(), queries.GetGraphQuery{})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestQueries_ListGraphs(t *testing.T) {
	b, graphs := setup(t)
	for i := 1; i <= 5; i++ {
		seedGraph(t, graphs, fmt.Sprintf("g%d", i))
	}

	page, err := bus.Ask[*common.PaginatedResult[queries.GraphSummaryView]](context.Background(), b,
		queries.ListGraphsQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "g3", page.Items[0].ID)
	assert.Equal(t, 5, page.Pagination.Total)

	_, err = b.Ask(context.Background(), queries.ListGraphsQuery{PageSize: 500})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestQueries_GetAnalysis(t *testing.T) {
	b, graphs := setup(t)
	seedGraph(t, graphs, "g1")

	snap, err := bus.Ask[*analysis.Snapshot](context.Background(), b, queries.GetAnalysisQuery{GraphID: "g1"})
	require.NoError(t, err)
	require.Len(t, snap.Loops, 1)
	assert.Equal(t, "loop-1", snap.Loops[0].ID)
	assert.Equal(t, analysis.LoopReinforcing, snap.Loops[0].Type)
	require.Len(t, snap.LeveragePoints, 2, "degree two is below the loop breaker threshold")
	assert.Equal(t, analysis.LeverageDelaySensitive, snap.LeveragePoints[0].Type)
}

func TestQueries_Archetypes(t *testing.T) {
	b, _ := setup(t)

	list, err := bus.Ask[[]archetypes.Archetype](context.Background(), b, queries.ListArchetypesQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 8)

	a, err := bus.Ask[archetypes.Archetype](context.Background(), b, queries.GetArchetypeQuery{ArchetypeID: "escalation"})
	require.NoError(t, err)
	assert.Equal(t, "escalation", a.ID)

	_, err = b.Ask(context.Background(), queries.GetArchetypeQuery{ArchetypeID: "nope"})
	assert.True(t, pkgerrors.IsNotFound(err))
}
