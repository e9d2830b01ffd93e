package jts

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Tree is a PQ-tree that never fails a reduction: before the templates run
// it discards the cheapest set of pertinent leaves whose removal makes the
// rest reducible. Tree is not safe for concurrent use.
type Tree struct {
	gen     uint64
	seq     int
	leafOf  []*Node
	removed []bool
}

// New returns an empty tree for edges [0, numEdges).
func New(numEdges int) *Tree {
	return &Tree{
		leafOf:  make([]*Node, numEdges),
		removed: make([]bool, numEdges),
	}
}

func (t *Tree) newNode(k Kind) *Node {
	t.seq++
	return &Node{tree: t, id: t.seq, kind: k, edge: graph.NilEdge}
}

// NewAttachment returns a childless P-node to seed the first fan-out.
func (t *Tree) NewAttachment() *Node { return t.newNode(KindP) }

// Leaf returns the leaf bound to e, or nil once e is reduced or discarded.
func (t *Tree) Leaf(e graph.EdgeID) *Node {
	if e < 0 || int(e) >= len(t.leafOf) {
		return nil
	}
	return t.leafOf[e]
}

// Discarded reports whether a reduction dropped the leaf of e.
func (t *Tree) Discarded(e graph.EdgeID) bool {
	return e >= 0 && int(e) < len(t.removed) && t.removed[e]
}

// FanOut hangs one new leaf per edge below the attachment a. A single edge
// turns a itself into the leaf.
func (t *Tree) FanOut(a *Node, edges []graph.EdgeID) {
	if len(edges) == 1 {
		t.bind(a, edges[0])
		return
	}
	for _, e := range edges {
		l := t.newNode(KindL)
		t.bind(l, e)
		l.link(a)
	}
}

func (t *Tree) bind(l *Node, e graph.EdgeID) {
	l.kind = KindL
	l.edge = e
	t.leafOf[e] = l
	t.removed[e] = false
}

func (t *Tree) makeP(children []*Node) *Node {
	n := t.newNode(KindP)
	n.gen = t.gen
	for _, c := range children {
		c.link(n)
	}
	switch n.pertChildren {
	case len(n.children):
		n.pert = Full
	case 0:
		n.pert = Empty
	default:
		n.pert = Partial
	}
	return n
}

// bringUpOnlyChild replaces the content of x by that of its single child
// and drops the child.
func (t *Tree) bringUpOnlyChild(x *Node) {
	c := x.children[0]
	x.kind = c.kind
	x.children = nil
	for _, gc := range slices.Clone(c.children) {
		gc.parent = nil
		gc.link(x)
	}
	c.children = nil
	x.edge = c.edge
	if c.current() {
		x.pert = c.pert
		x.pertChildren = c.pertChildren
		x.fullChildren = c.fullChildren
		x.partial1, x.partial2 = c.partial1, c.partial2
		x.cdChild = c.cdChild
	} else {
		x.pert = Empty
		x.pertChildren, x.fullChildren = 0, 0
		x.partial1, x.partial2, x.cdChild = nil, nil, nil
	}
	if x.kind == KindL {
		t.leafOf[x.edge] = x
	}
	c.parent = nil
}

// removeSubtree detaches n and drops it with all its descendants.
func (t *Tree) removeSubtree(n *Node) {
	n.unlinkFromParent()
	q := []*Node{n}
	for len(q) > 0 {
		c := q[0]
		q = q[1:]
		q = append(q, c.children...)
		if c.kind == KindL && t.leafOf[c.edge] == c {
			t.leafOf[c.edge] = nil
		}
		c.children = nil
		c.parent = nil
	}
}

// Root climbs from n to the root of its tree.
func (t *Tree) Root(n *Node) *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Frontier returns the leaf edges of the tree containing anchor from left
// to right.
func (t *Tree) Frontier(anchor *Node) []graph.EdgeID {
	var out []graph.EdgeID
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.kind == KindL {
			out = append(out, n.edge)
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.Root(anchor))
	return out
}

// Format renders the tree containing anchor with P-nodes in braces, Q-nodes
// in brackets and leaves as edge numbers.
func (t *Tree) Format(anchor *Node) string {
	var sb strings.Builder
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.kind == KindL {
			sb.WriteString(strconv.Itoa(int(n.edge)))
			return
		}
		open, closing := byte('{'), byte('}')
		if n.kind == KindQ {
			open, closing = '[', ']'
		}
		sb.WriteByte(open)
		for i, c := range n.children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			visit(c)
		}
		sb.WriteByte(closing)
	}
	visit(t.Root(anchor))
	return sb.String()
}
