package planarity

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
)

// build creates a graph with nodes 1..n and the given labeled edges.
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

// complete builds K_n, leaving out the listed edges.
func complete(t *testing.T, n int, skip ...[2]int64) *graph.Graph {
	var pairs [][2]int64
	for i := int64(1); i <= int64(n); i++ {
		for j := i + 1; j <= int64(n); j++ {
			if !contains(skip, i, j) {
				pairs = append(pairs, [2]int64{i, j})
			}
		}
	}
	return build(t, n, pairs)
}

// bipartite builds K_{a,b} on nodes 1..a and a+1..a+b, leaving out the
// listed edges.
func bipartite(t *testing.T, a, b int, skip ...[2]int64) *graph.Graph {
	var pairs [][2]int64
	for i := int64(1); i <= int64(a); i++ {
		for j := int64(a + 1); j <= int64(a+b); j++ {
			if !contains(skip, i, j) {
				pairs = append(pairs, [2]int64{i, j})
			}
		}
	}
	return build(t, a+b, pairs)
}

func contains(pairs [][2]int64, i, j int64) bool {
	for _, p := range pairs {
		if (p[0] == i && p[1] == j) || (p[0] == j && p[1] == i) {
			return true
		}
	}
	return false
}

// eachOrder calls fn with an st-order for every ordered pair of distinct
// nodes of the biconnected graph g.
func eachOrder(t *testing.T, g *graph.Graph, fn func(s, tn graph.NodeID, st []graph.NodeID)) {
	t.Helper()
	for _, s := range g.Nodes() {
		for _, tn := range g.Nodes() {
			if s == tn {
				continue
			}
			st, err := graph.STNumbering(g, s, tn)
			require.NoError(t, err)
			fn(s, tn, st)
		}
	}
}

// randomBiconnected builds a cycle on n nodes plus extra random chords.
func randomBiconnected(t *testing.T, r *rand.Rand, n, extra int) *graph.Graph {
	var pairs [][2]int64
	for i := int64(1); i <= int64(n); i++ {
		pairs = append(pairs, [2]int64{i, i%int64(n) + 1})
	}
	for range extra * 4 {
		if len(pairs) == n+extra {
			break
		}
		i, j := r.Int64N(int64(n))+1, r.Int64N(int64(n))+1
		if i == j || contains(pairs, i, j) {
			continue
		}
		pairs = append(pairs, [2]int64{i, j})
	}
	return build(t, n, pairs)
}

func TestIsPlanarSmallCompleteGraphs(t *testing.T) {
	for n := 1; n <= 4; n++ {
		g := complete(t, n)
		if n == 1 {
			ok, err := IsPlanar(g, g.Nodes())
			require.NoError(t, err)
			assert.True(t, ok)
			continue
		}
		eachOrder(t, g, func(s, tn graph.NodeID, st []graph.NodeID) {
			ok, err := IsPlanar(g, st)
			require.NoError(t, err)
			assert.True(t, ok, "K%d s=%d t=%d", n, s, tn)
		})
	}
}

func TestKuratowskiGraphs(t *testing.T) {
	tests := []struct {
		name   string
		g      func(t *testing.T) *graph.Graph
		planar bool
	}{
		{"K5", func(t *testing.T) *graph.Graph { return complete(t, 5) }, false},
		{"K5MinusEdge13", func(t *testing.T) *graph.Graph { return complete(t, 5, [2]int64{1, 3}) }, true},
		{"K33", func(t *testing.T) *graph.Graph { return bipartite(t, 3, 3) }, false},
		{"K33MinusEdge", func(t *testing.T) *graph.Graph { return bipartite(t, 3, 3, [2]int64{1, 4}) }, true},
		{"K6", func(t *testing.T) *graph.Graph { return complete(t, 6) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.g(t)
			eachOrder(t, g, func(s, tn graph.NodeID, st []graph.NodeID) {
				bl, err := IsPlanar(g, st)
				require.NoError(t, err)
				assert.Equal(t, tt.planar, bl, "linear s=%d t=%d", s, tn)

				q, err := IsPlanarJTS(g, st)
				require.NoError(t, err)
				assert.Equal(t, tt.planar, q, "quadratic s=%d t=%d", s, tn)
			})
		})
	}
}

func TestK5MinusEdgeFromOneToFive(t *testing.T) {
	g := build(t, 5, [][2]int64{{1, 2}, {1, 4}, {1, 5}, {2, 3}, {2, 4}, {2, 5}, {3, 4}, {3, 5}, {4, 5}})
	s, _ := g.NodeByLabel(1)
	tn, _ := g.NodeByLabel(5)
	st, err := graph.STNumbering(g, s, tn)
	require.NoError(t, err)

	ok, err := IsPlanar(g, st)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubdividedK5EveryOrder(t *testing.T) {
	// K5 on 1, 4, 5, 6, 7 with 4-7 subdivided through 3 and 2.
	g := build(t, 7, [][2]int64{
		{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 1},
		{6, 1}, {2, 7}, {5, 7}, {5, 1}, {6, 4}, {1, 4},
	})
	eachOrder(t, g, func(s, tn graph.NodeID, st []graph.NodeID) {
		ok, err := IsPlanar(g, st)
		require.NoError(t, err, "s=%d t=%d", s, tn)
		assert.False(t, ok, "s=%d t=%d", s, tn)

		ok, err = FindEmbedding(g.Clone(), st)
		require.NoError(t, err, "s=%d t=%d", s, tn)
		assert.False(t, ok, "s=%d t=%d", s, tn)
	})
}

func TestCrossCheckRandomGraphs(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := range 40 {
		n := 5 + i%4
		g := randomBiconnected(t, r, n, 2+i%7)
		eachOrder(t, g, func(s, tn graph.NodeID, st []graph.NodeID) {
			bl, err := IsPlanar(g, st)
			require.NoError(t, err)
			q, err := IsPlanarJTS(g, st)
			require.NoError(t, err)
			require.Equal(t, bl, q, "graph %d s=%d t=%d", i, s, tn)
		})
	}
}

func TestFindEmbeddingIsPlanar(t *testing.T) {
	graphs := map[string]func(t *testing.T) *graph.Graph{
		"K4":            func(t *testing.T) *graph.Graph { return complete(t, 4) },
		"K5MinusEdge13": func(t *testing.T) *graph.Graph { return complete(t, 5, [2]int64{1, 3}) },
		"K33MinusEdge":  func(t *testing.T) *graph.Graph { return bipartite(t, 3, 3, [2]int64{2, 5}) },
		"Wheel": func(t *testing.T) *graph.Graph {
			return build(t, 6, [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1}, {6, 1}, {6, 2}, {6, 3}, {6, 4}, {6, 5}})
		},
		"Prism": func(t *testing.T) *graph.Graph {
			return build(t, 6, [][2]int64{{1, 2}, {2, 3}, {3, 1}, {4, 5}, {5, 6}, {6, 4}, {1, 4}, {2, 5}, {3, 6}})
		},
		"DoubledTriangle": func(t *testing.T) *graph.Graph {
			return build(t, 3, [][2]int64{{1, 2}, {1, 2}, {2, 3}, {2, 3}, {3, 1}})
		},
	}
	for name, mk := range graphs {
		t.Run(name, func(t *testing.T) {
			eachOrder(t, mk(t), func(s, tn graph.NodeID, st []graph.NodeID) {
				g := mk(t)
				ok, err := FindEmbedding(g, st)
				require.NoError(t, err)
				require.True(t, ok)
				assert.NoError(t, VerifyEmbedding(g), "s=%d t=%d", s, tn)
			})
		})
	}
}

func TestFindEmbeddingLeavesNonPlanarGraph(t *testing.T) {
	g := complete(t, 5)
	before := make([][]graph.EdgeID, g.NumNodes())
	for _, n := range g.Nodes() {
		before[n] = append([]graph.EdgeID(nil), g.Incident(n)...)
	}
	st, err := graph.STNumbering(g, 0, 4)
	require.NoError(t, err)

	ok, err := FindEmbedding(g, st)
	require.NoError(t, err)
	assert.False(t, ok)
	for _, n := range g.Nodes() {
		assert.Equal(t, before[n], g.Incident(n))
	}
}

func TestRandomEmbeddings(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	embedded := 0
	for i := range 40 {
		g := randomBiconnected(t, r, 6+i%3, 1+i%5)
		st, err := graph.STNumbering(g, 0, graph.NodeID(g.NumNodes()-1))
		require.NoError(t, err)
		ok, err := FindEmbedding(g, st)
		require.NoError(t, err)
		if !ok {
			continue
		}
		embedded++
		require.NoError(t, VerifyEmbedding(g), "graph %d", i)
	}
	assert.Positive(t, embedded)
}

func TestCheckReportsFailure(t *testing.T) {
	g := complete(t, 5)
	st, err := graph.STNumbering(g, 0, 4)
	require.NoError(t, err)

	v, err := Check(context.Background(), g, st, Options{})
	require.NoError(t, err)
	assert.False(t, v.Planar)
	assert.Equal(t, AlgorithmBL, v.Algorithm)
	assert.Contains(t, []perrors.Code{perrors.ErrCodeBubbleUp, perrors.ErrCodeTemplateMatch}, v.Code)
	assert.Greater(t, v.Step, 0)
	assert.Equal(t, st[v.Step], v.Node)

	v, err = Check(context.Background(), g, st, Options{Algorithm: AlgorithmJTS})
	require.NoError(t, err)
	assert.False(t, v.Planar)
	assert.Empty(t, v.Code)
	assert.NotEmpty(t, v.Discarded)
	assert.Equal(t, st[v.Step], v.Node)
}

func TestCheckPlanarVerdict(t *testing.T) {
	g := complete(t, 4)
	v, err := Check(context.Background(), g, g.Nodes(), Options{})
	require.NoError(t, err)
	assert.True(t, v.Planar)
	assert.Equal(t, -1, v.Step)
	assert.Equal(t, graph.NilNode, v.Node)
}

func TestCheckRejectsBadInput(t *testing.T) {
	cycle := build(t, 4, [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 1}})

	_, err := Check(context.Background(), cycle, []graph.NodeID{0, 1}, Options{})
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput), "%v", err)

	_, err = Check(context.Background(), cycle, []graph.NodeID{0, 1, 1, 3}, Options{})
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput), "%v", err)

	// Node 3 comes second but both its neighbours come later.
	_, err = Check(context.Background(), cycle, []graph.NodeID{0, 2, 1, 3}, Options{})
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput), "%v", err)

	_, err = Check(context.Background(), cycle, cycle.Nodes(), Options{Algorithm: "hopcroft"})
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput), "%v", err)
}

func TestCheckHonoursContext(t *testing.T) {
	g := complete(t, 5, [2]int64{1, 3})
	st, err := graph.STNumbering(g, 0, 4)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Check(ctx, g, st, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNonPlanarEdgesLeavePlanarSubgraph(t *testing.T) {
	for _, g := range []*graph.Graph{complete(t, 5), bipartite(t, 3, 3), complete(t, 6)} {
		st, err := graph.STNumbering(g, 0, graph.NodeID(g.NumNodes()-1))
		require.NoError(t, err)
		removed, err := NonPlanarEdges(g, st)
		require.NoError(t, err)
		require.NotEmpty(t, removed)

		drop := map[graph.EdgeID]bool{}
		for _, e := range removed {
			drop[e] = true
		}
		sub, _ := g.Subgraph(func(e graph.EdgeID) bool { return !drop[e] })
		ok, err := IsPlanarGraph(sub)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestNonPlanarEdgesOfPlanarGraph(t *testing.T) {
	g := complete(t, 5, [2]int64{2, 4})
	eachOrder(t, g, func(s, tn graph.NodeID, st []graph.NodeID) {
		removed, err := NonPlanarEdges(g, st)
		require.NoError(t, err)
		assert.Empty(t, removed)
	})
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAlgorithm, a)
	a, err = ParseAlgorithm("JTS")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmJTS, a)
	_, err = ParseAlgorithm("nope")
	assert.Error(t, err)
}
