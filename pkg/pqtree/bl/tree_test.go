package bl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/planarity/pkg/graph"
)

func edges(ids ...int) []graph.EdgeID {
	out := make([]graph.EdgeID, len(ids))
	for i, id := range ids {
		out[i] = graph.EdgeID(id)
	}
	return out
}

// fanned returns a tree whose root is a P-node over leaves 0..n-1.
func fanned(t *testing.T, n int, opts ...Option) *Tree {
	t.Helper()
	tree := New(n+4, opts...)
	a := tree.NewAttachment()
	tree.FanOut(a, edges(seq(n)...))
	return tree
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func reduce(t *testing.T, tree *Tree, ids ...int) *Reduction {
	t.Helper()
	r, err := tree.Reduce(edges(ids...))
	require.NoError(t, err, "reduce %v on %s", ids, tree.Format(tree.Leaf(0)))
	checkTree(t, tree, tree.Leaf(graph.EdgeID(ids[0])))
	return r
}

func remove(t *testing.T, tree *Tree, r *Reduction) *Node {
	t.Helper()
	a := tree.Remove(r)
	checkTree(t, tree, a)
	return a
}

// consecutive reports whether set occupies a contiguous stretch of frontier.
func consecutive(frontier, set []graph.EdgeID) bool {
	in := map[graph.EdgeID]bool{}
	for _, e := range set {
		in[e] = true
	}
	first, last := -1, -1
	for i, e := range frontier {
		if in[e] {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first >= 0 && last-first+1 == len(set)
}

func TestReduceBuildsQNode(t *testing.T) {
	tree := fanned(t, 4)
	anchor := tree.Leaf(0)

	reduce(t, tree, 0, 1)
	assert.Equal(t, "{3 2 {0 1}}", tree.Format(anchor))

	reduce(t, tree, 1, 2)
	assert.Equal(t, "{3 [2 1 0]}", tree.Format(anchor))

	reduce(t, tree, 2, 3)
	assert.Equal(t, "[3 2 1 0]", tree.Format(anchor))

	front := tree.Frontier(anchor)
	for _, set := range [][]graph.EdgeID{edges(0, 1), edges(1, 2), edges(2, 3)} {
		assert.True(t, consecutive(front, set), "%v in %v", set, front)
	}
}

func TestReduceRejectsSplitLeaves(t *testing.T) {
	tree := fanned(t, 4)
	reduce(t, tree, 0, 1)
	reduce(t, tree, 1, 2)
	reduce(t, tree, 2, 3)

	_, err := tree.Reduce(edges(0, 2))
	assert.ErrorIs(t, err, ErrBubbleUp)
}

func TestReduceAcceptsComplementaryRun(t *testing.T) {
	tree := fanned(t, 4)
	reduce(t, tree, 0, 1)
	reduce(t, tree, 1, 2)
	reduce(t, tree, 2, 3)

	// {3 2 0} is not consecutive in [3 2 1 0] but its complement is.
	r := reduce(t, tree, 3, 2, 0)
	assert.Equal(t, CDPartial, r.Root.Pertinence())
}

func TestReduceRejectsComplementaryRunBelowRoot(t *testing.T) {
	tree := fanned(t, 4)
	reduce(t, tree, 0, 1)
	reduce(t, tree, 1, 2)
	require.Equal(t, "{3 [2 1 0]}", tree.Format(tree.Leaf(0)))

	// 3 hangs outside the Q-node, so {2 0} and {1 3} cannot both be runs.
	_, err := tree.Reduce(edges(2, 0))
	assert.ErrorIs(t, err, ErrTemplateMatch)
}

func TestPartialSlotsNeedParent(t *testing.T) {
	tree := New(1)
	n := tree.NewAttachment()
	assert.False(t, n.setSinglyPartialInParent())
	assert.False(t, n.setCDPartialInParent())
}

func TestReduceTooManyPartialChildren(t *testing.T) {
	tree := fanned(t, 6)
	reduce(t, tree, 0, 1)
	reduce(t, tree, 2, 3)
	reduce(t, tree, 4, 5)

	_, err := tree.Reduce(edges(0, 2, 4))
	assert.ErrorIs(t, err, ErrTemplateMatch)
}

func TestReduceErrors(t *testing.T) {
	tree := fanned(t, 3)
	_, err := tree.Reduce(nil)
	assert.ErrorIs(t, err, ErrNoLeaves)
	_, err = tree.Reduce(edges(5))
	assert.ErrorIs(t, err, ErrUnknownLeaf)
	_, err = tree.Reduce(edges(-1))
	assert.ErrorIs(t, err, ErrUnknownLeaf)
}

func TestSingleLeafReduction(t *testing.T) {
	tree := fanned(t, 3, CollectEdges())
	r := reduce(t, tree, 1)
	assert.Equal(t, KindL, r.Root.Kind())
	assert.Equal(t, edges(1), tree.Collect(r, 0))

	a := remove(t, tree, r)
	assert.Equal(t, KindP, a.Kind())
	assert.Equal(t, graph.NilEdge, a.Edge())
	tree.FanOut(a, edges(3, 4))
	assert.ElementsMatch(t, edges(0, 2, 3, 4), tree.Frontier(tree.Leaf(0)))
}

func TestCollectAndRemoveFromPNode(t *testing.T) {
	tree := fanned(t, 4, CollectEdges())
	r := reduce(t, tree, 1, 2)
	assert.Equal(t, KindP, r.Root.Kind())
	assert.ElementsMatch(t, edges(1, 2), tree.Collect(r, 0))

	a := remove(t, tree, r)
	assert.Empty(t, a.Children())
	tree.FanOut(a, edges(4, 5))
	assert.ElementsMatch(t, edges(0, 3, 4, 5), tree.Frontier(tree.Leaf(0)))
}

func TestCollectAndRemoveFromQEnd(t *testing.T) {
	tree := fanned(t, 4, CollectEdges())
	for _, pair := range [][]int{{0, 1}, {1, 2}, {2, 3}} {
		r := reduce(t, tree, pair...)
		tree.Collect(r, 0)
	}
	anchor := tree.Leaf(0)
	require.Equal(t, "[3 2 1 0]", tree.Format(anchor))

	r := reduce(t, tree, 3, 2)
	assert.Equal(t, SinglyPartial, r.Root.Pertinence())
	assert.Equal(t, edges(3, 2), tree.Collect(r, 0))

	a := remove(t, tree, r)
	assert.Equal(t, "[{} 1 0]", tree.Format(anchor))
	tree.FanOut(a, edges(4, 5))
	assert.Equal(t, "[{4 5} 1 0]", tree.Format(anchor))
}

func TestFanOutOrderedBuildsChain(t *testing.T) {
	tree := New(4, TrackFlips())
	a := tree.NewAttachment()
	tree.FanOutOrdered(a, edges(2, 0, 3), 7)
	assert.Equal(t, KindQ, a.Kind())
	assert.Equal(t, "[2 0 3]", tree.Format(a))
	assert.Equal(t, []graph.NodeID{7}, a.orient.inNorm)

	flips := tree.Flips(a)
	assert.Empty(t, flips.InReversed)
	assert.Empty(t, flips.OutReversed)
}

func TestFanOutOrderedSingleEdge(t *testing.T) {
	tree := New(2)
	a := tree.NewAttachment()
	tree.FanOutOrdered(a, edges(1), 0)
	assert.Equal(t, KindL, a.Kind())
	assert.Same(t, a, tree.Leaf(1))
}

func TestToDOT(t *testing.T) {
	tree := fanned(t, 3)
	reduce(t, tree, 0, 1)

	dot := tree.ToDOT(tree.Leaf(0), func(e graph.EdgeID) string { return "edge" + string(rune('a'+e)) })
	assert.True(t, strings.HasPrefix(dot, "digraph PQTree {"))
	for _, want := range []string{"edgea", "edgeb", "edgec", "shape=ellipse", "arrowhead=none"} {
		assert.Contains(t, dot, want)
	}
	assert.Contains(t, tree.ToDOT(nil, nil), "digraph PQTree {")
}
