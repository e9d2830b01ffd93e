package bl

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Collect returns the pertinent leaves' edges in frontier order and, when
// flips are tracked, anchors graph node v's ordering at the node whose later
// flips it must follow. It must be called before [Tree.Remove].
func (t *Tree) Collect(r *Reduction, v graph.NodeID) []graph.EdgeID {
	root := r.Root
	out := append(append([]graph.EdgeID(nil), root.collected2...), root.collected...)
	root.collected, root.collected2 = nil, nil
	if t.tracking {
		switch {
		case root.kind != KindVirtualRoot:
			root.orient.outNorm = append(root.orient.outNorm, v)
		case t.nextSibReversed:
			t.nextSib.assumed.outRev = append(t.nextSib.assumed.outRev, v)
		default:
			t.nextSib.assumed.outNorm = append(t.nextSib.assumed.outNorm, v)
		}
	}
	return out
}

// Remove deletes the pertinent subtree of r and returns the attachment node
// left in its place, ready for [Tree.FanOut].
func (t *Tree) Remove(r *Reduction) *Node {
	root := r.Root
	switch {
	case t.cdRoot != nil:
		return t.removeComplementary(root)
	case root.kind == KindL:
		root.resetToAttachment()
		return root
	case root.kind == KindP:
		t.removeDescendants(root.children)
		root.resetToAttachment()
		return root
	case root.kind == KindQ:
		return t.removeFromQ(root)
	default:
		return t.removeMiddle(root)
	}
}

// removeComplementary peels the full layers above the complementary
// Q-node, strips the full runs at both of its ends and closes the gap with
// a new attachment at end2. The Q-node becomes the tree root.
func (t *Tree) removeComplementary(treeRoot *Node) *Node {
	var top []*Node
	for l := treeRoot; l.cd != nil; {
		cd := l.cd
		top = append(top, l)
		if l.kind == KindQ {
			cd.unlinkFromQ(l)
		} else {
			cd.unlinkFromP()
		}
		l = cd
	}
	root := t.cdRoot
	if t.tracking && root != treeRoot {
		root.orient.absorb(&treeRoot.orient, false)
	}

	prev, cur := (*Node)(nil), root.end1
	for cur != nil && cur.isFull() {
		top = append(top, cur)
		prev, cur = advance(prev, cur)
	}
	unlinkSiblings(cur, prev)
	cur.parent = root
	root.end1 = cur

	prev, cur = nil, root.end2
	for cur != nil && cur.isFull() {
		top = append(top, cur)
		prev, cur = advance(prev, cur)
	}
	emptyEnd := cur
	onSib2 := emptyEnd.sib2 == prev
	unlinkSiblings(emptyEnd, prev)

	t.removeDescendants(top)

	a := t.NewAttachment()
	if onSib2 {
		emptyEnd.sib2 = a
	} else {
		emptyEnd.sib1 = a
	}
	a.sib1 = emptyEnd
	a.parent = root
	root.end2 = a
	return a
}

// removeFromQ removes a full run touching one end of the Q-node root, or
// every child when all are full.
func (t *Tree) removeFromQ(root *Node) *Node {
	var cur *Node
	end1 := true
	switch {
	case root.end1.isFull():
		cur = root.end1
	case root.end2.isFull():
		cur, end1 = root.end2, false
	default:
		return t.removeMiddle(root)
	}
	var top []*Node
	var prev *Node
	for cur != nil && cur.isFull() {
		top = append(top, cur)
		prev, cur = advance(prev, cur)
	}
	if cur == nil {
		t.removeDescendants(top)
		root.resetToAttachment()
		return root
	}

	empty := cur
	onSib2 := empty.sib2 == prev
	unlinkSiblings(prev, empty)
	a := t.NewAttachment()
	if onSib2 {
		empty.sib2 = a
	} else {
		empty.sib1 = a
	}
	a.sib1 = empty
	if end1 {
		root.end1 = a
	} else {
		root.end2 = a
	}
	a.parent = root
	t.removeDescendants(top)
	return a
}

// removeMiddle removes a full run enclosed by empty siblings on both sides,
// under a real Q-node or a virtual root.
func (t *Tree) removeMiddle(root *Node) *Node {
	start := root.full[len(root.full)-1]
	fullEnd1, emptyEnd1 := runEndFull(start.sib1, start)
	onSib1 := emptyEnd1.sib1 == fullEnd1

	var top []*Node
	prev, cur := emptyEnd1, fullEnd1
	for cur != nil && cur.isFull() {
		top = append(top, cur)
		prev, cur = advance(prev, cur)
	}
	fullEnd2, emptyEnd2 := prev, cur
	onSib1b := emptyEnd2.sib1 == fullEnd2

	unlinkSiblings(emptyEnd1, fullEnd1)
	unlinkSiblings(emptyEnd2, fullEnd2)
	a := t.NewAttachment()
	if onSib1 {
		emptyEnd1.sib1 = a
	} else {
		emptyEnd1.sib2 = a
	}
	a.sib1 = emptyEnd1
	if onSib1b {
		emptyEnd2.sib1 = a
	} else {
		emptyEnd2.sib2 = a
	}
	a.sib2 = emptyEnd2
	t.removeDescendants(top)
	return a
}

// runEndFull walks over full siblings and returns the last full one and the
// sibling after it.
func runEndFull(prev, cur *Node) (last, next *Node) {
	for cur != nil && cur.isFull() {
		prev, cur = advance(prev, cur)
	}
	return prev, cur
}

// removeDescendants retires the given nodes and everything below them.
func (t *Tree) removeDescendants(top []*Node) {
	q := linkedlistqueue.New()
	for _, n := range top {
		q.Enqueue(n)
	}
	for !q.Empty() {
		v, _ := q.Dequeue()
		c := v.(*Node)
		switch c.kind {
		case KindP:
			for _, gc := range c.children {
				q.Enqueue(gc)
			}
		case KindQ:
			for prev, cur := (*Node)(nil), c.end1; cur != nil; prev, cur = advance(prev, cur) {
				q.Enqueue(cur)
			}
		}
		t.retire(c)
		c.children = nil
		c.end1, c.end2 = nil, nil
		c.parent, c.sib1, c.sib2 = nil, nil, nil
	}
}
