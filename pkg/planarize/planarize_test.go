package planarize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/planarity"
)

func build(t *testing.T, n int, pairs [][2]int64) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := int64(1); i <= int64(n); i++ {
		_, err := g.AddNode(i)
		require.NoError(t, err)
	}
	for _, p := range pairs {
		_, err := g.AddEdgeByLabel(p[0], p[1])
		require.NoError(t, err)
	}
	return g
}

func complete(t *testing.T, n int) *graph.Graph {
	var pairs [][2]int64
	for i := int64(1); i <= int64(n); i++ {
		for j := i + 1; j <= int64(n); j++ {
			pairs = append(pairs, [2]int64{i, j})
		}
	}
	return build(t, n, pairs)
}

func bipartite33(t *testing.T) *graph.Graph {
	var pairs [][2]int64
	for i := int64(1); i <= 3; i++ {
		for j := int64(4); j <= 6; j++ {
			pairs = append(pairs, [2]int64{i, j})
		}
	}
	return build(t, 6, pairs)
}

// checkChains verifies that every chain runs between the endpoints of its
// edge through virtual nodes only.
func checkChains(t *testing.T, g *graph.Graph, res *Result) {
	t.Helper()
	require.Len(t, res.Chains, g.NumEdges())
	for _, e := range g.Edges() {
		chain := res.Chains[e]
		a, b := g.Ends(e)
		require.GreaterOrEqual(t, len(chain), 2, "edge %d", e)
		assert.Equal(t, a, chain[0])
		assert.Equal(t, b, chain[len(chain)-1])
		for _, x := range chain[1 : len(chain)-1] {
			assert.True(t, res.Graph.IsVirtual(x))
		}
	}
}

func TestPlanarSubgraphOfK5(t *testing.T) {
	g := complete(t, 5)
	st, err := graph.STNumbering(g, 0, 4)
	require.NoError(t, err)

	s, err := PlanarSubgraph(context.Background(), g, st, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, s.Removed)
	assert.Equal(t, 5, s.Graph.NumNodes())
	assert.Equal(t, g.NumEdges(), s.Graph.NumEdges()+len(s.Removed))
	for _, e := range s.Removed {
		assert.True(t, g.IsRemoved(e))
	}
	for i, o := range s.Orig {
		assert.Equal(t, int64(o), s.Graph.EdgeLabel(graph.EdgeID(i)))
		assert.False(t, g.IsRemoved(o))
	}

	ok, err := planarity.IsPlanarGraph(s.Graph)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, Maximalize(context.Background(), s, Options{}))
	assert.Equal(t, 9, s.Graph.NumEdges())
	assert.Len(t, s.Removed, 1)
}

func TestPlanarSubgraphOfSmallGraph(t *testing.T) {
	g := complete(t, 4)
	s, err := PlanarSubgraph(context.Background(), g, g.Nodes(), Options{})
	require.NoError(t, err)
	assert.Empty(t, s.Removed)
	assert.Equal(t, 6, s.Graph.NumEdges())
}

func TestPlanarizeK5(t *testing.T) {
	g := complete(t, 5)
	res, err := Planarize(context.Background(), g, Options{})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Graph.NumNodes())
	assert.Equal(t, 12, res.Graph.NumEdges())
	assert.Equal(t, 1, res.Crossings())
	require.Len(t, res.Removed, 1)
	assert.Equal(t, int64(6), res.Graph.Label(res.Virtual[0]))
	assert.NoError(t, planarity.VerifyEmbedding(res.Graph))

	checkChains(t, g, res)
	assert.Len(t, res.Chains[res.Removed[0]], 3)
}

func TestPlanarizeK33(t *testing.T) {
	g := bipartite33(t)
	res, err := Planarize(context.Background(), g, Options{VirtualStart: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Crossings())
	assert.Equal(t, int64(100), res.Graph.Label(res.Virtual[0]))
	assert.NoError(t, planarity.VerifyEmbedding(res.Graph))
	checkChains(t, g, res)
}

func TestPlanarizeK6(t *testing.T) {
	g := complete(t, 6)
	res, err := Planarize(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Removed, 3)
	assert.GreaterOrEqual(t, res.Crossings(), 3)
	assert.Equal(t, g.NumNodes()+res.Crossings(), res.Graph.NumNodes())
	assert.Equal(t, g.NumEdges()+2*res.Crossings(), res.Graph.NumEdges())
	assert.NoError(t, planarity.VerifyEmbedding(res.Graph))
	checkChains(t, g, res)
}

func TestPlanarizePlanarGraphIsUnchanged(t *testing.T) {
	g := build(t, 6, [][2]int64{{1, 2}, {2, 3}, {3, 1}, {4, 5}, {5, 6}, {6, 4}, {1, 4}, {2, 5}, {3, 6}})
	res, err := Planarize(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Crossings())
	assert.Empty(t, res.Removed)
	assert.Equal(t, g.NumEdges(), res.Graph.NumEdges())
	checkChains(t, g, res)
}

func TestPlanarizeDisconnectedGraph(t *testing.T) {
	g := build(t, 8, [][2]int64{
		{1, 2}, {1, 3}, {1, 4}, {1, 5}, {2, 3}, {2, 4}, {2, 5}, {3, 4}, {3, 5}, {4, 5},
		{6, 7}, {7, 8},
	})
	res, err := Planarize(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Crossings())
	assert.NoError(t, planarity.VerifyEmbedding(res.Graph))
	checkChains(t, g, res)
}

func TestInserterJoinsComponents(t *testing.T) {
	g := build(t, 6, [][2]int64{{1, 2}, {2, 3}, {3, 1}, {4, 5}, {5, 6}, {6, 4}})
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)

	in := &inserter{g: g, next: firstVirtualLabel(g, 0)}
	n, err := in.insert(0, 3, 99)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 7, g.NumEdges())
	assert.NoError(t, planarity.VerifyEmbedding(g))
}

func TestFirstVirtualLabel(t *testing.T) {
	g := build(t, 3, nil)
	assert.Equal(t, int64(4), firstVirtualLabel(g, 0))
	assert.Equal(t, int64(4), firstVirtualLabel(g, 2))
	assert.Equal(t, int64(10), firstVirtualLabel(g, 10))
}
