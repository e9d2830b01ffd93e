package bl

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Tree is a Booth-Lueker PQ-tree whose leaves stand for graph edges.
//
// A tree is driven one graph node at a time: [Tree.Reduce] makes the leaves
// of the node's incoming edges consecutive, [Tree.Collect] optionally reads
// the order they ended up in, [Tree.Remove] replaces the pertinent subtree
// by a single attachment node and [Tree.FanOut] or [Tree.FanOutOrdered]
// hangs the node's outgoing edges below that attachment.
//
// Tree is not safe for concurrent use.
type Tree struct {
	gen uint64
	seq int

	collecting bool
	tracking   bool

	leafOf []*Node

	cdRoot *Node

	// Set by a doubly partial reduction under a virtual root: the first
	// non-pertinent sibling after the run and whether its chain direction
	// opposes the direction the run was read in.
	nextSib         *Node
	nextSibReversed bool

	retired orientation
}

// Option configures a [Tree].
type Option func(*Tree)

// CollectEdges makes every reduction record the order of its pertinent
// leaves, available through [Tree.Collect].
func CollectEdges() Option {
	return func(t *Tree) { t.collecting = true }
}

// TrackFlips records how every collected ordering is oriented relative to
// the Q-nodes that later absorb it. It implies [CollectEdges].
func TrackFlips() Option {
	return func(t *Tree) {
		t.collecting = true
		t.tracking = true
	}
}

// New returns an empty tree able to hold leaves for edges [0, numEdges).
func New(numEdges int, opts ...Option) *Tree {
	t := &Tree{leafOf: make([]*Node, numEdges)}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Leaf returns the leaf currently bound to e, or nil.
func (t *Tree) Leaf(e graph.EdgeID) *Node {
	if e < 0 || int(e) >= len(t.leafOf) {
		return nil
	}
	return t.leafOf[e]
}

func (t *Tree) newNode(k Kind) *Node {
	t.seq++
	return &Node{tree: t, id: t.seq, kind: k, edge: graph.NilEdge}
}

// NewAttachment returns a fresh childless P-node to seed the first fan-out.
func (t *Tree) NewAttachment() *Node {
	return t.newNode(KindP)
}

// retire drops n from the tree. Orientations still anchored at n are kept
// as confirmed.
func (t *Tree) retire(n *Node) {
	n.discardFullLink()
	n.clearFull()
	t.retired.absorb(&n.orient, false)
	n.assumed = orientation{}
	n.collected, n.collected2 = nil, nil
}

func (t *Tree) makeP(children []*Node) *Node {
	n := t.newNode(KindP)
	n.gen = t.gen
	for _, c := range children {
		c.linkToP(n)
	}
	switch {
	case n.pertChildren == len(n.children):
		n.pert = Full
	case n.pertChildren == 0:
		n.pert = Empty
	}
	return n
}

func (t *Tree) makeQ() *Node {
	n := t.newNode(KindQ)
	n.gen = t.gen
	n.pert = Empty
	return n
}

// replace puts y at x's position under x's parent and detaches x.
func (t *Tree) replace(x, y *Node) {
	p := x.parent
	if p != nil && p.kind == KindP && x.sib1 == nil && x.sib2 == nil {
		p.children[x.childIdx] = y
		y.childIdx = x.childIdx
		y.parent = p
		x.parent = nil
		return
	}
	oneSided := (x.sib1 == nil) != (x.sib2 == nil)
	if x.sib1 != nil {
		x.sib1.relink(x, y)
	}
	if x.sib2 != nil {
		x.sib2.relink(x, y)
	}
	y.sib1, y.sib2 = x.sib1, x.sib2
	if p != nil {
		switch {
		case oneSided && p.end1 == x:
			p.end1 = y
		case oneSided:
			p.end2 = y
		}
	}
	y.parent = p
	x.parent, x.sib1, x.sib2 = nil, nil, nil
}

// bringUpOnlyChild removes the single-child node x and puts its child in
// its place.
func (t *Tree) bringUpOnlyChild(x *Node) *Node {
	c := x.children[0]
	x.children = nil
	t.replace(x, c)
	if t.collecting {
		c.collected = append(c.collected, x.collected...)
		c.collected2 = append(c.collected2, x.collected2...)
		x.collected, x.collected2 = nil, nil
		if t.tracking {
			c.orient.absorb(&x.orient, false)
			c.assumed.absorb(&x.assumed, false)
		}
	}
	t.retire(x)
	return c
}

// FanOut hangs one new leaf per edge below the attachment a. A single edge
// turns a itself into the leaf.
func (t *Tree) FanOut(a *Node, edges []graph.EdgeID) {
	if len(edges) == 1 {
		t.bindLeaf(a, edges[0])
		return
	}
	for _, e := range edges {
		l := t.newNode(KindL)
		t.bindLeaf(l, e)
		l.childIdx = len(a.children)
		a.children = append(a.children, l)
		l.parent = a
	}
}

// FanOutOrdered hangs the edges below a as a Q-node chain in the given
// order, and anchors the incoming ordering of graph node v at a.
func (t *Tree) FanOutOrdered(a *Node, edges []graph.EdgeID, v graph.NodeID) {
	if len(edges) == 1 {
		t.bindLeaf(a, edges[0])
		return
	}
	a.kind = KindQ
	var prev *Node
	for i, e := range edges {
		l := t.newNode(KindL)
		t.bindLeaf(l, e)
		switch i {
		case 0:
			a.end1 = l
			l.parent = a
		case len(edges) - 1:
			a.end2 = l
			l.parent = a
			linkSiblings(prev, l)
		default:
			linkSiblings(prev, l)
		}
		prev = l
	}
	a.orient.inNorm = append(a.orient.inNorm, v)
}

func (t *Tree) bindLeaf(l *Node, e graph.EdgeID) {
	l.kind = KindL
	l.edge = e
	t.leafOf[e] = l
}

// Root climbs from n to the root of the tree containing it.
func (t *Tree) Root(n *Node) *Node {
	for {
		if n.sib1 != nil && n.sib2 != nil {
			prev, cur := n.sib1, n
			for cur != nil {
				prev, cur = advance(prev, cur)
			}
			n = prev
		}
		if n.parent == nil {
			return n
		}
		n = n.parent
	}
}

// walk visits root and its descendants breadth first.
func (t *Tree) walk(root *Node, fn func(*Node)) {
	q := linkedlistqueue.New()
	q.Enqueue(root)
	for !q.Empty() {
		v, _ := q.Dequeue()
		n := v.(*Node)
		fn(n)
		for _, c := range n.Children() {
			q.Enqueue(c)
		}
	}
}
