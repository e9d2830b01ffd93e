package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build creates a graph with nodes 1..n and the given labeled edges.
func build(t *testing.T, n int, pairs [][2]int64) *Graph {
	t.Helper()
	g := New()
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

func complete(t *testing.T, n int) *Graph {
	var pairs [][2]int64
	for i := int64(1); i <= int64(n); i++ {
		for j := i + 1; j <= int64(n); j++ {
			pairs = append(pairs, [2]int64{i, j})
		}
	}
	return build(t, n, pairs)
}

func nodeOf(t *testing.T, g *Graph, label int64) NodeID {
	t.Helper()
	id, ok := g.NodeByLabel(label)
	require.True(t, ok, "node %d", label)
	return id
}

func TestAddNodeAndEdge(t *testing.T) {
	g := New()
	a, err := g.AddNode(7)
	require.NoError(t, err)
	_, err = g.AddNode(7)
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	b, _ := g.AddNode(8)
	e, err := g.AddEdge(a, b)
	require.NoError(t, err)
	assert.Equal(t, b, g.Adjacent(e, a))
	assert.Equal(t, a, g.Adjacent(e, b))

	_, err = g.AddEdge(a, a)
	assert.ErrorIs(t, err, ErrSelfLoop)
	_, err = g.AddEdgeByLabel(7, 99)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestSetRotation(t *testing.T) {
	g := complete(t, 4)
	v := nodeOf(t, g, 1)
	inc := g.Incident(v)
	rev := []EdgeID{inc[2], inc[1], inc[0]}

	require.NoError(t, g.SetRotation(v, rev))
	assert.Equal(t, rev, g.Incident(v))
	assert.Equal(t, rev[0], g.NextInRotation(v, rev[2]))

	assert.ErrorIs(t, g.SetRotation(v, rev[:2]), ErrNotPermutation)
	assert.ErrorIs(t, g.SetRotation(v, []EdgeID{rev[0], rev[0], rev[1]}), ErrNotPermutation)
}

func TestSplit(t *testing.T) {
	g := build(t, 3, [][2]int64{{1, 2}, {2, 3}, {3, 1}})
	e := g.Incident(nodeOf(t, g, 1))[0]
	p, q := g.Ends(e)

	x, e2, err := g.Split(e, 100)
	require.NoError(t, err)
	assert.True(t, g.IsVirtual(x))
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 4, g.NumEdges())

	u, w := g.Ends(e)
	assert.Equal(t, p, u)
	assert.Equal(t, x, w)
	u, w = g.Ends(e2)
	assert.Equal(t, x, u)
	assert.Equal(t, q, w)
	assert.Contains(t, g.Incident(q), e2)
	assert.NotContains(t, g.Incident(q), e)
	assert.Equal(t, g.EdgeLabel(e), g.EdgeLabel(e2))
	assert.True(t, EulerCheck(g))
}

func TestReplaceIncident(t *testing.T) {
	g := build(t, 4, [][2]int64{{1, 2}, {1, 3}, {2, 3}})
	n1 := nodeOf(t, g, 1)
	e12, e13 := g.Incident(n1)[0], g.Incident(n1)[1]
	e14, err := g.AddEdgeByLabel(1, 4)
	require.NoError(t, err)
	require.Equal(t, []EdgeID{e12, e13, e14}, g.Incident(n1))

	require.NoError(t, g.ReplaceIncident(n1, e12, e14))
	assert.Equal(t, []EdgeID{e14, e13}, g.Incident(n1))

	e23 := g.Incident(nodeOf(t, g, 2))[1]
	assert.ErrorIs(t, g.ReplaceIncident(n1, e12, e13), ErrUnknownEdge, "old no longer incident")
	assert.ErrorIs(t, g.ReplaceIncident(n1, e13, e23), ErrUnknownEdge, "repl does not touch n")
	assert.ErrorIs(t, g.ReplaceIncident(n1, e13, EdgeID(99)), ErrUnknownEdge)
	assert.ErrorIs(t, g.ReplaceIncident(NodeID(99), e13, e14), ErrUnknownNode)
}

func TestSubgraphKeepsHandles(t *testing.T) {
	g := complete(t, 4)
	s, orig := g.Subgraph(func(e EdgeID) bool { return e%2 == 0 })
	assert.Equal(t, g.NumNodes(), s.NumNodes())
	assert.Equal(t, 3, s.NumEdges())
	for i, e := range orig {
		su, sv := s.Ends(EdgeID(i))
		gu, gv := g.Ends(e)
		assert.Equal(t, gu, su)
		assert.Equal(t, gv, sv)
	}
}

func TestInduced(t *testing.T) {
	g := complete(t, 5)
	sub, nodes, edges := g.Induced([]EdgeID{0, 1, 4})
	assert.Equal(t, 3, sub.NumEdges())
	assert.Len(t, edges, 3)
	for i, n := range nodes {
		assert.Equal(t, g.Label(n), sub.Label(NodeID(i)))
	}
}

func TestSTNumbering(t *testing.T) {
	tests := []struct {
		name  string
		g     func(t *testing.T) *Graph
		s, t  int64
		valid bool
	}{
		{"K4", func(t *testing.T) *Graph { return complete(t, 4) }, 1, 4, true},
		{"K5", func(t *testing.T) *Graph { return complete(t, 5) }, 2, 3, true},
		{"Cycle", func(t *testing.T) *Graph {
			return build(t, 6, [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 1}})
		}, 1, 4, true},
		{"Wheel", func(t *testing.T) *Graph {
			return build(t, 5, [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 1}, {5, 1}, {5, 2}, {5, 3}, {5, 4}})
		}, 5, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.g(t)
			s, tn := nodeOf(t, g, tt.s), nodeOf(t, g, tt.t)
			order, err := STNumbering(g, s, tn)
			require.NoError(t, err)
			require.Len(t, order, g.NumNodes())
			assert.Equal(t, s, order[0])
			assert.Equal(t, tn, order[len(order)-1])
			assert.Equal(t, tt.valid, IsBipolar(g, order))
		})
	}
}

func TestSTNumberingAllPairs(t *testing.T) {
	g := complete(t, 6)
	for _, s := range g.Nodes() {
		for _, tn := range g.Nodes() {
			if s == tn {
				continue
			}
			order, err := STNumbering(g, s, tn)
			require.NoError(t, err)
			require.True(t, IsBipolar(g, order), "s=%d t=%d order=%v", s, tn, order)
		}
	}
}

func TestSTNumberingErrors(t *testing.T) {
	g := build(t, 4, [][2]int64{{1, 2}, {3, 4}})
	_, err := STNumbering(g, 0, 0)
	assert.ErrorIs(t, err, ErrSameEndpoints)
	_, err = STNumbering(g, 0, 1)
	assert.ErrorIs(t, err, ErrDisconnected)
	_, err = STNumbering(g, 0, 9)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestBlocks(t *testing.T) {
	// Two triangles sharing node 3 plus a pendant edge 5-6.
	g := build(t, 6, [][2]int64{{1, 2}, {2, 3}, {3, 1}, {3, 4}, {4, 5}, {5, 3}, {5, 6}})
	blocks := Blocks(g)
	require.Len(t, blocks, 3)
	sizes := map[int]int{}
	for _, b := range blocks {
		sizes[len(b)]++
	}
	assert.Equal(t, map[int]int{3: 2, 1: 1}, sizes)
	assert.False(t, IsBiconnected(g))
	assert.True(t, IsConnected(g))
	assert.True(t, IsBiconnected(complete(t, 5)))
}

func TestComponents(t *testing.T) {
	g := build(t, 5, [][2]int64{{1, 2}, {3, 4}})
	assert.Len(t, Components(g), 3)
	assert.False(t, IsConnected(g))
}

func TestFacesOfCycle(t *testing.T) {
	g := build(t, 5, [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1}})
	faces := Faces(g)
	require.Len(t, faces, 2)
	assert.Len(t, faces[0], 5)
	assert.Len(t, faces[1], 5)
	assert.True(t, EulerCheck(g))
}

func TestEulerCheckRejectsTwistedRotation(t *testing.T) {
	// K4 drawn with node 4 in the middle of triangle 1-2-3.
	g := build(t, 4, [][2]int64{{1, 2}, {2, 3}, {3, 1}, {1, 4}, {2, 4}, {3, 4}})
	e := func(a, b int64) EdgeID {
		for _, id := range g.Incident(nodeOf(t, g, a)) {
			if g.Label(g.Adjacent(id, nodeOf(t, g, a))) == b {
				return id
			}
		}
		t.Fatalf("no edge %d-%d", a, b)
		return NilEdge
	}
	require.NoError(t, g.SetRotation(nodeOf(t, g, 1), []EdgeID{e(1, 2), e(1, 4), e(1, 3)}))
	require.NoError(t, g.SetRotation(nodeOf(t, g, 2), []EdgeID{e(2, 3), e(2, 4), e(2, 1)}))
	require.NoError(t, g.SetRotation(nodeOf(t, g, 3), []EdgeID{e(3, 1), e(3, 4), e(3, 2)}))
	require.NoError(t, g.SetRotation(nodeOf(t, g, 4), []EdgeID{e(4, 1), e(4, 2), e(4, 3)}))
	assert.True(t, EulerCheck(g))
	assert.Len(t, Faces(g), 4)

	// Swapping two edges at the center makes the rotation non-planar.
	require.NoError(t, g.SetRotation(nodeOf(t, g, 4), []EdgeID{e(4, 2), e(4, 1), e(4, 3)}))
	assert.False(t, EulerCheck(g))
}
