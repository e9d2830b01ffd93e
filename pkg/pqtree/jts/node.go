package jts

import (
	"slices"
	"strconv"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Kind is the node type of a PQ-tree node.
type Kind int

const (
	KindUnknown Kind = iota
	KindP
	KindQ
	KindL
)

func (k Kind) String() string {
	switch k {
	case KindP:
		return "P"
	case KindQ:
		return "Q"
	case KindL:
		return "L"
	}
	return "?"
}

// Pertinence classifies a pertinent node during one reduction.
type Pertinence int

const (
	PertinenceUnknown Pertinence = iota
	Full
	Partial
	CDPartial
	Empty
)

func (p Pertinence) String() string {
	switch p {
	case Full:
		return "full"
	case Partial:
		return "partial"
	case CDPartial:
		return "cd-partial"
	case Empty:
		return "empty"
	}
	return "unknown"
}

// role is the part a pertinent node plays in the cheapest reducible tree:
// discarded (W), one-sided (H), middle (A), kept whole (B) or complementary.
type role int

const (
	roleUnknown role = iota
	roleW
	roleH
	roleA
	roleB
	roleCD
)

// Node is a node of a [Tree]. Both P- and Q-nodes keep their children in
// an ordered slice and every child always knows its parent.
type Node struct {
	tree *Tree
	id   int
	kind Kind

	children []*Node
	parent   *Node
	edge     graph.EdgeID

	gen          uint64
	pert         Pertinence
	pertChildren int
	processed    int

	// Discard costs. w removes every pertinent leaf below, h leaves a
	// one-sided run, a a run in the middle and cd a complementary run.
	w, h, a, cd int

	max1WminusH, max2WminusH *Node
	maxWminusA               *Node
	boundaryQH               *Node
	qhFullOnHead             bool
	headQA, tailQA           *Node
	singleA                  bool

	role role

	partial1, partial2 *Node
	cdChild            *Node
	fullChildren       int
}

// ID is unique within the owning tree.
func (n *Node) ID() int { return n.id }

func (n *Node) Kind() Kind { return n.kind }

// Edge is the graph edge of a leaf, or [graph.NilEdge].
func (n *Node) Edge() graph.EdgeID { return n.edge }

// Pertinence reports the classification of n in the latest reduction.
func (n *Node) Pertinence() Pertinence {
	if n.gen != n.tree.gen {
		return Empty
	}
	return n.pert
}

// Children returns a copy of the children of n in order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

func (n *Node) reset() {
	t := n.tree
	*n = Node{
		tree:     t,
		id:       n.id,
		kind:     n.kind,
		children: n.children,
		parent:   n.parent,
		edge:     n.edge,
		gen:      t.gen,
	}
}

func (n *Node) current() bool { return n.gen == n.tree.gen }

func (n *Node) isPertinent() bool { return n.current() && n.pert != Empty }

func (n *Node) isFull() bool { return n.current() && n.pert == Full }

func (n *Node) isPartial() bool { return n.current() && n.pert == Partial }

func (n *Node) isCDPartial() bool { return n.current() && n.pert == CDPartial }

func (n *Node) isEmpty() bool { return !n.current() || n.pert == Empty }

func (n *Node) allChildrenFull() bool {
	for _, c := range n.children {
		if !c.isFull() {
			return false
		}
	}
	return true
}

// allButOneFull reports whether exactly one child of n is not full, and
// returns it.
func (n *Node) allButOneFull() (*Node, bool) {
	var other *Node
	full := 0
	for _, c := range n.children {
		if c.isFull() {
			full++
		} else {
			other = c
		}
	}
	return other, full+1 == len(n.children)
}

func (n *Node) headFull() bool {
	return len(n.children) > 0 && n.children[0].isFull()
}

func (n *Node) index() int {
	return slices.Index(n.parent.children, n)
}

// unlinkFromParent detaches n and withdraws its pertinence from the
// parent's counters.
func (n *Node) unlinkFromParent() {
	p := n.parent
	if p == nil {
		return
	}
	i := n.index()
	p.children = slices.Delete(p.children, i, i+1)
	n.parent = nil
	if !n.isPertinent() {
		return
	}
	p.pertChildren--
	switch {
	case n.isFull():
		if p.fullChildren > 0 {
			p.fullChildren--
		}
	case n.isPartial():
		if p.partial1 == n {
			p.partial1 = nil
		}
		if p.partial2 == n {
			p.partial2 = nil
		}
	}
}

// linkAt inserts n as the child of p at position pos.
func (n *Node) linkAt(p *Node, pos int) {
	p.children = slices.Insert(p.children, pos, n)
	n.parent = p
	switch {
	case n.isFull():
		p.pertChildren++
		p.fullChildren++
	case n.isPartial():
		p.pertChildren++
		n.setPartialInParent()
	}
}

func (n *Node) link(p *Node) { n.linkAt(p, len(p.children)) }

// linkFullEnd adds n at whichever end of the Q-node p holds full children.
func (n *Node) linkFullEnd(p *Node) {
	if p.headFull() {
		n.linkAt(p, 0)
	} else {
		n.link(p)
	}
}

func (n *Node) linkEmptyEnd(p *Node) {
	if p.headFull() {
		n.link(p)
	} else {
		n.linkAt(p, 0)
	}
}

func (n *Node) setFullInParent() {
	if n.parent != nil {
		n.parent.fullChildren++
	}
}

func (n *Node) setPartialInParent() {
	p := n.parent
	if p == nil {
		return
	}
	switch {
	case p.partial1 == nil:
		p.partial1 = n
	case p.partial2 == nil:
		p.partial2 = n
	}
}

func (n *Node) setCDPartialInParent() {
	if p := n.parent; p != nil && p.cdChild == nil {
		p.cdChild = n
	}
}

func (n *Node) onePartial() *Node {
	switch {
	case n.partial1 != nil && n.partial2 == nil:
		return n.partial1
	case n.partial1 == nil && n.partial2 != nil:
		return n.partial2
	}
	return nil
}

// splitFullEmpty returns the full and the empty children of n in order.
// Partial children appear in neither.
func (n *Node) splitFullEmpty() (full, empty []*Node) {
	for _, c := range n.children {
		switch {
		case c.isFull():
			full = append(full, c)
		case c.isEmpty():
			empty = append(empty, c)
		}
	}
	return full, empty
}

func (n *Node) String() string {
	if n.kind == KindL {
		return "L" + strconv.Itoa(int(n.edge))
	}
	return n.kind.String() + strconv.Itoa(n.id)
}
