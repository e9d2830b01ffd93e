package bl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/planarity/pkg/graph"
)

const maxChain = 1 << 16

// checkTree fails t when a full-children backlink or a Q-chain in the tree
// containing anchor is broken.
func checkTree(t *testing.T, tree *Tree, anchor *Node) {
	t.Helper()
	tree.walk(tree.Root(anchor), func(n *Node) {
		for i, c := range n.full {
			assert.Same(t, n, c.fullParent, "full child %d of %s", i, n)
			assert.Equal(t, i, c.fullIdx, "full child %d of %s", i, n)
		}
		if p := n.fullParent; p != nil {
			require.Less(t, n.fullIdx, len(p.full), "backlink of %s", n)
			assert.Same(t, n, p.full[n.fullIdx], "backlink of %s", n)
		}
		switch n.kind {
		case KindP:
			for i, c := range n.children {
				assert.Same(t, n, c.parent, "child %d of %s", i, n)
				assert.Equal(t, i, c.childIdx, "child %d of %s", i, n)
			}
		case KindQ:
			checkChain(t, n)
		}
	})
}

// checkChain walks q from end1 and expects to stop at end2, with two
// siblings on every interior child and one on each end.
func checkChain(t *testing.T, q *Node) {
	t.Helper()
	require.NotNil(t, q.end1, "%s", q)
	require.NotNil(t, q.end2, "%s", q)
	require.NotSame(t, q.end1, q.end2, "%s", q)

	count := 0
	var prev *Node
	for cur := q.end1; cur != nil; prev, cur = advance(prev, cur) {
		count++
		require.Less(t, count, maxChain, "chain of %s does not end", q)
		sibs := 0
		if cur.sib1 != nil {
			sibs++
		}
		if cur.sib2 != nil {
			sibs++
		}
		if cur == q.end1 || cur == q.end2 {
			assert.Equal(t, 1, sibs, "end %s of %s", cur, q)
		} else {
			assert.Equal(t, 2, sibs, "interior %s of %s", cur, q)
		}
	}
	assert.Same(t, q.end2, prev, "chain of %s", q)
	assert.GreaterOrEqual(t, count, 2, "%s", q)
}

func TestInvariantsAcrossSweep(t *testing.T) {
	// Consecutive-ones sets on a path 0..7: each adjacent pair, then
	// growing windows, then their complements at the root.
	sets := [][]int{
		{0, 1}, {1, 2}, {2, 3}, {4, 5}, {5, 6}, {6, 7},
		{3, 4}, {1, 2, 3, 4}, {0, 1, 2, 3, 4, 5},
		{7, 6, 0},
	}
	tree := fanned(t, 8, CollectEdges())
	anchor := tree.Leaf(0)
	for _, set := range sets {
		reduce(t, tree, set...)
		assert.True(t, consecutive(tree.Frontier(anchor), edges(set...)) ||
			consecutive(tree.Frontier(anchor), complement(8, set)), "%v", set)
	}
}

func TestInvariantsAcrossRemove(t *testing.T) {
	tree := fanned(t, 5, CollectEdges())
	for _, set := range [][]int{{0, 1}, {1, 2}, {2, 3}} {
		reduce(t, tree, set...)
	}
	// Each step removes the reduced run and hangs three new leaves from
	// the attachment: 5-7, then 8-10, then 11-13.
	next := 5
	for _, set := range [][]int{{3, 2}, {5, 6}, {4, 7}} {
		r := reduce(t, tree, set...)
		tree.Collect(r, 0)
		a := remove(t, tree, r)
		tree.FanOut(a, edges(next, next+1, next+2))
		checkTree(t, tree, a)
		next += 3
	}
	assert.ElementsMatch(t, edges(0, 1, 8, 9, 10, 11, 12, 13), tree.Frontier(tree.Leaf(0)))
}

func TestResetIsIdempotent(t *testing.T) {
	tree := fanned(t, 4)
	reduce(t, tree, 0, 1)
	r := reduce(t, tree, 1, 2)
	for _, n := range []*Node{r.Root, tree.Leaf(1), tree.Leaf(3)} {
		n.reset()
		once := *n
		n.reset()
		assert.Equal(t, once, *n, "%s", n)
		assert.True(t, n.onQueue(), "%s", n)
		assert.Empty(t, n.full, "%s", n)
		assert.Nil(t, n.fullParent, "%s", n)
	}
}

func TestClearFullPanicsOnForeignBacklink(t *testing.T) {
	tree := fanned(t, 3)
	p := tree.NewAttachment()
	q := tree.NewAttachment()
	c := tree.Leaf(2)
	c.createFullLink(p)
	q.full = append(q.full, c)
	assert.Panics(t, func() { q.clearFull() })
}

func complement(n int, set []int) []graph.EdgeID {
	in := map[int]bool{}
	for _, i := range set {
		in[i] = true
	}
	var out []int
	for i := range n {
		if !in[i] {
			out = append(out, i)
		}
	}
	return edges(out...)
}
