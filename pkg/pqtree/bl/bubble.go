package bl

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/matzehuels/planarity/pkg/graph"
)

var (
	// ErrBubbleUp is returned when the pertinent nodes split into more than
	// one block of siblings whose parent cannot be reached.
	ErrBubbleUp = errors.New("bubble-up found disjoint pertinent blocks")

	// ErrTemplateMatch is returned when a pertinent node matches no template.
	ErrTemplateMatch = errors.New("no template matches pertinent node")

	// ErrNoLeaves is returned when a reduction is asked for an empty set.
	ErrNoLeaves = errors.New("reduction needs at least one leaf")

	// ErrUnknownLeaf is returned when an edge has no leaf in the tree.
	ErrUnknownLeaf = errors.New("edge has no leaf")
)

// Reduction is the outcome of a successful [Tree.Reduce].
type Reduction struct {
	// Root is the pertinent root. It may be a virtual root standing in for
	// the unreached parent of a run of Q-node children.
	Root *Node
	// Leaves is the number of pertinent leaves.
	Leaves int
}

// Reduce makes the leaves of edges consecutive. It fails with
// [ErrBubbleUp] or [ErrTemplateMatch] when no frontier of the tree can hold
// them consecutively, in which case the tree must be discarded.
func (t *Tree) Reduce(edges []graph.EdgeID) (*Reduction, error) {
	if len(edges) == 0 {
		return nil, ErrNoLeaves
	}
	leaves := make([]*Node, len(edges))
	for i, e := range edges {
		l := t.Leaf(e)
		if l == nil {
			return nil, fmt.Errorf("%w: edge %d", ErrUnknownLeaf, e)
		}
		leaves[i] = l
	}

	t.gen++
	t.cdRoot = nil
	t.nextSib, t.nextSibReversed = nil, false

	if !t.bubbleUp(leaves) {
		return nil, ErrBubbleUp
	}
	root, ok := t.applyTemplates(leaves)
	if !ok {
		return nil, ErrTemplateMatch
	}
	return &Reduction{Root: root, Leaves: len(leaves)}, nil
}

// bubbleUp marks every pertinent node and gives each the parent pointer the
// templates need. It fails if the pertinent nodes cannot form one subtree.
func (t *Tree) bubbleUp(leaves []*Node) bool {
	if len(leaves) == 1 {
		leaves[0].reset()
		return true
	}
	b := &bubble{q: linkedlistqueue.New()}
	for _, l := range leaves {
		l.reset()
		b.q.Enqueue(l)
	}
	var off []*Node
	for b.q.Size()+b.blocks+b.offTop > 1 {
		v, _ := b.q.Dequeue()
		x := v.(*Node)
		off = append(off, x)
		b.tryUnblock(x)
		if !b.q.Empty() {
			continue
		}
		switch {
		case b.blocks == 1 && b.offTop == 0:
			t.makeVirtualRoot(off)
			b.blocks = 0
		case b.blocks > 1, b.blocks == 1 && b.offTop == 1:
			return false
		}
	}
	return true
}

type bubble struct {
	q *linkedlistqueue.Queue
	// blocks counts runs of consecutive blocked siblings.
	blocks int
	// offTop is 1 once the tree root has been dequeued.
	offTop int
}

func (b *bubble) queueParent(p *Node) {
	if p == nil {
		b.offTop = 1
		return
	}
	if !p.pertinent() {
		p.reset()
		b.q.Enqueue(p)
	}
}

func (b *bubble) tryUnblock(x *Node) {
	s1, s2 := x.sib1, x.sib2
	switch {
	case s1 != nil && s2 != nil:
		switch {
		case s1.isUnblocked():
			x.unblockUnder(s1.parent)
			b.unblockSiblings(x, s2)
		case s2.isUnblocked():
			x.unblockUnder(s2.parent)
			b.unblockSiblings(x, s1)
		default:
			x.block()
			if s1.isBlocked() && s2.isBlocked() {
				b.blocks--
			} else if (!s1.pertinent() || s1.onQueue()) && (!s2.pertinent() || s2.onQueue()) {
				b.blocks++
			}
		}
	case s1 != nil || s2 != nil:
		b.queueParent(x.parent)
		x.unblock()
		if s1 != nil {
			b.unblockSiblings(x, s1)
		} else {
			b.unblockSiblings(x, s2)
		}
	default:
		b.queueParent(x.parent)
		x.unblock()
	}
}

func (b *bubble) unblockSiblings(x, sib *Node) {
	removed := false
	for prev, cur := x, sib; cur != nil && cur.isBlocked(); prev, cur = advance(prev, cur) {
		cur.unblockUnder(x.parent)
		removed = true
	}
	if removed {
		b.blocks--
	}
}

// makeVirtualRoot adopts the single remaining block of blocked siblings
// under a transient parent. The virtual root never learns its children;
// they only point at it.
func (t *Tree) makeVirtualRoot(off []*Node) *Node {
	var x *Node
	for _, n := range off {
		if n.isBlocked() {
			x = n
			break
		}
	}
	vr := t.newNode(KindVirtualRoot)
	vr.gen = t.gen
	for prev, cur := x.sib1, x; cur != nil && cur.isBlocked(); prev, cur = advance(prev, cur) {
		cur.unblockUnder(vr)
	}
	for prev, cur := x, x.sib1; cur != nil && cur.isBlocked(); prev, cur = advance(prev, cur) {
		cur.unblockUnder(vr)
	}
	return vr
}

// applyTemplates rewrites the pertinent subtree bottom up and returns the
// pertinent root.
func (t *Tree) applyTemplates(leaves []*Node) (*Node, bool) {
	q := linkedlistqueue.New()
	for _, l := range leaves {
		l.pertLeaves = 1
		q.Enqueue(l)
	}
	var root *Node
	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(*Node)
		if x.pertLeaves < len(leaves) {
			if p := x.parent; p != nil {
				p.pertLeaves += x.pertLeaves
				p.pertProcessed++
				if p.pertProcessed == p.pertChildren {
					q.Enqueue(p)
				}
			}
			matched, earlyOut := t.reducePartial(x)
			if !matched || earlyOut {
				return nil, false
			}
			continue
		}
		root = x
		if !t.reduceRoot(x, &root) {
			return nil, false
		}
	}
	return root, root != nil
}

// reducePartial applies the first matching template to a node below the
// pertinent root.
func (t *Tree) reducePartial(x *Node) (matched, earlyOut bool) {
	if t.templateL1(x, false) || t.templateP1(x, false) || t.templateQ1(x, false) {
		return true, false
	}
	if ok, early := t.templateP3(x); ok {
		return true, early
	}
	if ok, early := t.templateP5(x); ok {
		return true, early
	}
	if ok, early := t.templateP7(x); ok {
		return true, early
	}
	if ok, early := t.templateP8(x, false); ok {
		return true, early
	}
	if ok, early := t.templateQ2(x, false); ok {
		return true, early
	}
	if ok, early := t.templateQ4(x, false); ok {
		return true, early
	}
	return t.templateQ5(x, false)
}

// reduceRoot applies the first matching template to the pertinent root.
// P2, P4 and P6 move the root to a node they create or keep. A
// complementary result (P8, Q4, Q5) is only accepted at the root of the
// whole tree: below it, the empty material outside x would split the
// pertinent leaves.
func (t *Tree) reduceRoot(x *Node, root **Node) bool {
	switch {
	case t.templateL1(x, true), t.templateP1(x, true):
		return true
	case t.templateP2(x, root), t.templateP4(x, root), t.templateP6(x, root):
		return true
	}
	treeRoot := x.parent == nil && x.sib1 == nil && x.sib2 == nil
	if treeRoot {
		if ok, early := t.templateP8(x, true); ok {
			return !early
		}
	}
	if t.templateQ1(x, true) {
		return true
	}
	if ok, early := t.templateQ2(x, true); ok {
		return !early
	}
	if t.templateQ3(x) {
		return true
	}
	if !treeRoot {
		return false
	}
	if ok, early := t.templateQ4(x, true); ok {
		return !early
	}
	ok, early := t.templateQ5(x, true)
	return ok && !early
}
