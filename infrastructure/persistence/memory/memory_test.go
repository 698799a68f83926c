package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"causalmap/domain/analysis"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

func newGraph(t *testing.T, id string) *aggregates.Graph {
	t.Helper()
	gid, err := valueobjects.GraphIDFrom(id)
	require.NoError(t, err)
	g, err := aggregates.NewGraphWithID(gid, "Test", "", nil)
	require.NoError(t, err)
	return g
}

func newNode(t *testing.T, id string) *entities.Node {
	t.Helper()
	label, err := valueobjects.NewLabel("Node " + id)
	require.NoError(t, err)
	n, err := entities.NewNode(valueobjects.MustNodeID(id), label, valueobjects.CategoryStrength, valueobjects.NodeKindStock)
	require.NoError(t, err)
	return n
}

func TestGraphRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewGraphRepository(nil)

	g := newGraph(t, "g1")
	require.NoError(t, repo.Create(ctx, g))
	assert.True(t, pkgerrors.IsConflict(repo.Create(ctx, g)))

	loaded, err := repo.GetByID(ctx, g.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.AddNode(newNode(t, "a")))

	again, err := repo.GetByID(ctx, g.ID())
	require.NoError(t, err)
	assert.Zero(t, again.NodeCount(), "callers receive copies")

	_, err = repo.GetByID(ctx, valueobjects.NewGraphID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGraphRepository(nil)
	for _, id := range []string{"g1", "g2", "g3"} {
		require.NoError(t, repo.Create(ctx, newGraph(t, id)))
	}

	require.NoError(t, repo.Delete(ctx, newGraph(t, "g2").ID()))
	assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, newGraph(t, "g2").ID())))

	graphs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, "g1", graphs[0].ID().String())
	assert.Equal(t, "g3", graphs[1].ID().String())
}

func TestGraphRepository_ScopedByUser(t *testing.T) {
	repo := NewGraphRepository(nil)
	alice := common.WithUserID(context.Background(), "alice")
	bob := common.WithUserID(context.Background(), "bob")

	owned := newGraph(t, "g1")
	owned.AssignOwner("alice")
	require.NoError(t, repo.Create(alice, owned))
	require.NoError(t, repo.Create(context.Background(), newGraph(t, "shared")))

	_, err := repo.GetByID(bob, owned.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
	_, err = repo.Mutate(bob, owned.ID(), func(*aggregates.Graph) error { return nil })
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(repo.Delete(bob, owned.ID())))

	graphs, err := repo.List(bob)
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	assert.Equal(t, "shared", graphs[0].ID().String())

	graphs, err = repo.List(alice)
	require.NoError(t, err)
	assert.Len(t, graphs, 2)

	loaded, err := repo.GetByID(context.Background(), owned.ID())
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.OwnerID())

	require.NoError(t, repo.Delete(alice, owned.ID()))
}

func TestGraphRepository_Mutate(t *testing.T) {
	ctx := context.Background()
	repo := NewGraphRepository(nil)
	g := newGraph(t, "g1")
	require.NoError(t, repo.Create(ctx, g))

	saved, err := repo.Mutate(ctx, g.ID(), func(g *aggregates.Graph) error {
		return g.AddNode(newNode(t, "a"))
	})
	require.NoError(t, err)
	assert.Len(t, saved.GetUncommittedEvents(), 1)
	assert.Equal(t, 2, saved.Version())

	boom := errors.New("boom")
	_, err = repo.Mutate(ctx, g.ID(), func(g *aggregates.Graph) error {
		require.NoError(t, g.AddNode(newNode(t, "b")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(ctx, g.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NodeCount(), "failed mutation is discarded")
	assert.Empty(t, stored.GetUncommittedEvents())

	_, err = repo.Mutate(ctx, valueobjects.NewGraphID(), func(*aggregates.Graph) error { return nil })
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphRepository_MutateSerializes(t *testing.T) {
	ctx := context.Background()
	repo := NewGraphRepository(nil)
	g := newGraph(t, "g1")
	require.NoError(t, repo.Create(ctx, g))

	const workers = 20
	nodes := make([]*entities.Node, workers)
	for i := range nodes {
		nodes[i] = newNode(t, fmt.Sprintf("n%d", i))
	}

	var wg sync.WaitGroup
	for _, node := range nodes {
		wg.Add(1)
		go func(node *entities.Node) {
			defer wg.Done()
			_, err := repo.Mutate(ctx, g.ID(), func(g *aggregates.Graph) error {
				return g.AddNode(node.Clone())
			})
			assert.NoError(t, err)
		}(node)
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, g.ID())
	require.NoError(t, err)
	assert.Equal(t, workers, stored.NodeCount())
	assert.Equal(t, workers+1, stored.Version())
}

func TestKeyedLock_ContextCancel(t *testing.T) {
	locks := newKeyedLock()
	release, err := locks.acquire(context.Background(), "g1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locks.acquire(ctx, "g1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locks.acquire(context.Background(), "g2")
	require.NoError(t, err)
	other()

	release()
	again, err := locks.acquire(context.Background(), "g1")
	require.NoError(t, err)
	again()
	assert.Empty(t, locks.locks)
}

func TestAnalysisStore(t *testing.T) {
	ctx := context.Background()
	store := NewAnalysisStore()
	id := valueobjects.NewGraphID()

	snap, current, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.False(t, current)

	require.NoError(t, store.Put(ctx, id, &analysis.Snapshot{GraphVersion: 3, Checksum: "abc"}))
	snap, current, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, current)
	assert.Equal(t, 3, snap.GraphVersion)

	snap.GraphVersion = 99
	again, _, _ := store.Get(ctx, id)
	assert.Equal(t, 3, again.GraphVersion, "stored snapshot is copied")

	require.NoError(t, store.Invalidate(ctx, id))
	snap, current, _ = store.Get(ctx, id)
	assert.False(t, current)
	assert.Equal(t, "abc", snap.Checksum)

	require.NoError(t, store.Delete(ctx, id))
	snap, _, _ = store.Get(ctx, id)
	assert.Nil(t, snap)
}
