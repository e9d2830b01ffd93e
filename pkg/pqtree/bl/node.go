package bl

import (
	"fmt"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Kind is the structural type of a tree node.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindP
	KindQ
	KindL
	// KindVirtualRoot is a transient parent created by bubble-up for a run of
	// Q-node children whose real parent could not be reached.
	KindVirtualRoot
)

func (k Kind) String() string {
	switch k {
	case KindP:
		return "P"
	case KindQ:
		return "Q"
	case KindL:
		return "L"
	case KindVirtualRoot:
		return "VR"
	default:
		return "?"
	}
}

// Pertinence classifies a node within the current reduction.
type Pertinence uint8

const (
	PertinenceUnknown Pertinence = iota
	Full
	SinglyPartial
	DoublyPartial
	CDPartial
	Empty
)

func (p Pertinence) String() string {
	switch p {
	case Full:
		return "full"
	case SinglyPartial:
		return "singly-partial"
	case DoublyPartial:
		return "doubly-partial"
	case CDPartial:
		return "cd-partial"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Node is a node of a [Tree].
//
// P-node children live in an unordered slice; every child remembers its slot
// so it can be erased in constant time. Q-node children form an undirected
// doubly linked chain through sib1/sib2 with the two ends recorded on the
// parent. Only end children of a Q-node hold a valid parent pointer; interior
// children learn theirs during bubble-up.
type Node struct {
	tree *Tree
	id   int
	kind Kind

	parent     *Node
	sib1, sib2 *Node

	children []*Node
	childIdx int

	end1, end2 *Node

	gen                uint64
	blocked, unblocked bool

	pertChildren  int
	pertProcessed int
	pertLeaves    int
	pert          Pertinence

	sp1, sp2, cd *Node

	// full lists the children currently classified Full. A full child keeps
	// fullParent/fullIdx as a backlink into that list; fullParent is nil when
	// the child is not listed anywhere.
	full       []*Node
	fullParent *Node
	fullIdx    int

	edge graph.EdgeID

	collected  []graph.EdgeID
	collected2 []graph.EdgeID

	orient  orientation
	assumed orientation
}

// ID returns a number unique within the owning tree.
func (n *Node) ID() int { return n.id }

// Kind returns the structural type of n.
func (n *Node) Kind() Kind { return n.kind }

// Edge returns the graph edge bound to a leaf, or graph.NilEdge.
func (n *Node) Edge() graph.EdgeID { return n.edge }

// Pertinence returns the classification of n in the current reduction.
func (n *Node) Pertinence() Pertinence {
	if !n.pertinent() {
		return Empty
	}
	return n.pert
}

// Children returns the children of n. For Q-nodes the order runs from the
// first end child to the second.
func (n *Node) Children() []*Node {
	switch n.kind {
	case KindP:
		return append([]*Node(nil), n.children...)
	case KindQ:
		var out []*Node
		var prev *Node
		for cur := n.end1; cur != nil; prev, cur = advance(prev, cur) {
			out = append(out, cur)
		}
		return out
	}
	return nil
}

func (n *Node) String() string {
	if n.kind == KindL {
		return fmt.Sprintf("L%d{e%d}", n.id, n.edge)
	}
	return fmt.Sprintf("%s%d", n.kind, n.id)
}

func (n *Node) pertinent() bool { return n.gen == n.tree.gen }

func (n *Node) isUnblocked() bool { return n.pertinent() && n.unblocked }

func (n *Node) isBlocked() bool { return n.pertinent() && n.blocked }

func (n *Node) onQueue() bool { return n.pertinent() && !n.blocked && !n.unblocked }

func (n *Node) isFull() bool { return n.pertinent() && n.pert == Full }

func (n *Node) isSinglyPartial() bool { return n.pertinent() && n.pert == SinglyPartial }

func (n *Node) isCDPartial() bool { return n.pertinent() && n.pert == CDPartial }

func (n *Node) isEmpty() bool { return n.gen < n.tree.gen || n.pert == Empty }

func (n *Node) reset() {
	n.gen = n.tree.gen
	n.blocked, n.unblocked = false, false
	n.pert = PertinenceUnknown
	n.pertChildren, n.pertProcessed, n.pertLeaves = 0, 0, 0
	n.sp1, n.sp2, n.cd = nil, nil, nil
	n.clearFull()
	n.discardFullLink()
}

func (n *Node) unblockUnder(p *Node) {
	n.parent = p
	n.unblock()
}

func (n *Node) unblock() {
	n.blocked, n.unblocked = false, true
	if n.parent != nil {
		n.parent.pertChildren++
	}
}

func (n *Node) block() {
	n.blocked, n.unblocked = true, false
}

func (n *Node) discardFullLink() {
	p := n.fullParent
	if p == nil {
		return
	}
	last := len(p.full) - 1
	if n.fullIdx != last {
		moved := p.full[last]
		p.full[n.fullIdx] = moved
		moved.fullIdx = n.fullIdx
	}
	p.full[last] = nil
	p.full = p.full[:last]
	n.fullParent = nil
}

func (n *Node) clearFull() {
	for i, c := range n.full {
		if c.fullParent != n || c.fullIdx != i {
			panic(fmt.Sprintf("pqtree: %s listed as full child %d of %s but linked to %v", c, i, n, c.fullParent))
		}
		c.fullParent = nil
		n.full[i] = nil
	}
	n.full = n.full[:0]
}

func (n *Node) createFullLink(p *Node) {
	n.fullIdx = len(p.full)
	n.fullParent = p
	p.full = append(p.full, n)
}

func (n *Node) setFullInParent() {
	n.discardFullLink()
	n.createFullLink(n.parent)
}

// setSinglyPartialInParent records n in its parent's partial slots. It
// reports false when n has no parent or both slots are taken.
func (n *Node) setSinglyPartialInParent() bool {
	n.discardFullLink()
	p := n.parent
	switch {
	case p == nil:
		return false
	case p.sp1 == nil:
		p.sp1 = n
	case p.sp2 == nil:
		p.sp2 = n
	default:
		return false
	}
	return true
}

func (n *Node) setCDPartialInParent() bool {
	n.discardFullLink()
	p := n.parent
	if p == nil || p.cd != nil {
		return false
	}
	p.cd = n
	return true
}

// addTwoInitialChildren turns n into a singly partial Q-node [f, e].
func (n *Node) addTwoInitialChildren(f, e *Node) {
	n.discardFullLink()
	f.discardFullLink()
	e.discardFullLink()

	n.children = nil
	n.end1, n.end2 = f, e
	f.createFullLink(n)

	n.pertChildren = 1
	n.pertLeaves = f.pertLeaves
	n.pert = SinglyPartial

	f.sib1, f.sib2 = nil, e
	e.sib1, e.sib2 = f, nil
	f.parent, e.parent = n, n
}

func (n *Node) unlinkFromP() {
	n.discardFullLink()
	p := n.parent
	if p == nil || p.kind != KindP {
		return
	}
	last := len(p.children) - 1
	if n.childIdx != last {
		moved := p.children[last]
		p.children[n.childIdx] = moved
		moved.childIdx = n.childIdx
	}
	p.children[last] = nil
	p.children = p.children[:last]
	n.parent = nil

	if n.isFull() || n.isSinglyPartial() || n.isCDPartial() {
		p.pertChildren--
		p.pertLeaves -= n.pertLeaves
	}
	if p.sp1 == n {
		p.sp1 = nil
	} else if p.sp2 == n {
		p.sp2 = nil
	}
	if p.cd == n {
		p.cd = nil
	}
	p.pert = PertinenceUnknown
}

// unlinkFromQ splices n out of its sibling chain. For an interior child the
// caller supplies the parent, which n itself does not know.
func (n *Node) unlinkFromQ(p *Node) {
	n.discardFullLink()
	switch {
	case n.sib1 == nil && n.sib2 != nil, n.sib1 != nil && n.sib2 == nil:
		other := n.sib1
		if other == nil {
			other = n.sib2
		}
		if n.parent.end1 == n {
			n.parent.end1 = other
		} else {
			n.parent.end2 = other
		}
		unlinkSiblings(n, other)
		other.parent = n.parent
		p = n.parent
		n.parent = nil
	case n.sib1 != nil && n.sib2 != nil:
		s1, s2 := n.sib1, n.sib2
		unlinkSiblings(n, s1)
		unlinkSiblings(n, s2)
		linkSiblings(s1, s2)
		n.parent = nil
	}
	if p == nil || !p.pertinent() {
		return
	}
	if n.isFull() || n.isSinglyPartial() || n.isCDPartial() {
		p.pertChildren--
		p.pertLeaves -= n.pertLeaves
	}
	if p.sp1 == n {
		p.sp1 = nil
	} else if p.sp2 == n {
		p.sp2 = nil
	}
	if p.cd == n {
		p.cd = nil
	}
}

func (n *Node) linkToP(p *Node) {
	n.discardFullLink()
	if p.kind != KindP {
		return
	}
	n.childIdx = len(p.children)
	p.children = append(p.children, n)
	n.parent = p
	if n.isFull() {
		p.pertChildren++
		p.pertLeaves += n.pertLeaves
		n.createFullLink(p)
	}
	if n.isCDPartial() {
		p.pertChildren++
		p.pertLeaves += n.pertLeaves
	}
}

// linkToQEnd attaches n to the full or empty end of the partial Q-node p.
func (n *Node) linkToQEnd(p *Node, fullEnd bool) {
	n.discardFullLink()
	e1, e2 := p.end1, p.end2
	n.parent = p
	n.sib1 = nil
	if fullEnd == e1.isFull() {
		n.sib2 = e1
		if e1.sib1 == nil {
			e1.sib1 = n
		} else {
			e1.sib2 = n
		}
		p.end1 = n
	} else {
		n.sib2 = e2
		if e2.sib1 == nil {
			e2.sib1 = n
		} else {
			e2.sib2 = n
		}
		p.end2 = n
	}
	if n.isFull() {
		p.pertChildren++
		p.pertLeaves += n.pertLeaves
		n.createFullLink(p)
	}
}

func (n *Node) endChild1Full() bool {
	return n.kind == KindQ && n.end1.isFull()
}

func (n *Node) resetToAttachment() {
	n.discardFullLink()
	n.clearFull()
	n.kind = KindP
	n.end1, n.end2 = nil, nil
	n.children = nil
	n.edge = graph.NilEdge
}

func (n *Node) otherSibling(s *Node) *Node {
	if n.sib1 == s {
		return n.sib2
	}
	return n.sib1
}

// advance steps along an undirected sibling chain: given the node we came
// from and the current node, it returns the next pair.
func advance(prev, cur *Node) (*Node, *Node) {
	if cur == nil {
		return prev, cur
	}
	if cur.sib1 == prev {
		return cur, cur.sib2
	}
	return cur, cur.sib1
}

func linkSiblings(a, b *Node) {
	if a.sib1 == nil {
		a.sib1 = b
	} else {
		a.sib2 = b
	}
	if b.sib1 == nil {
		b.sib1 = a
	} else {
		b.sib2 = a
	}
}

func unlinkSiblings(a, b *Node) {
	if a == nil || b == nil {
		return
	}
	if a.sib1 == b {
		a.sib1 = nil
	} else if a.sib2 == b {
		a.sib2 = nil
	}
	if b.sib1 == a {
		b.sib1 = nil
	} else if b.sib2 == a {
		b.sib2 = nil
	}
}

// relink replaces the link from n to old with a link to repl, keeping the slot.
func (n *Node) relink(old, repl *Node) {
	if n.sib1 == old {
		n.sib1 = repl
	} else {
		n.sib2 = repl
	}
}
