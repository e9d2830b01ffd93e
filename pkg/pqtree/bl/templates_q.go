package bl

import (
	"slices"

	"github.com/matzehuels/planarity/pkg/graph"
)

// take appends the collected edges of the child c of x to dst, reversed
// when c is read against its own direction. prev is the sibling the walk
// arrived from and fixes the direction c's parked orientations resolve to.
func (t *Tree) take(dst *[]graph.EdgeID, x, c, prev *Node, reversed bool) {
	if reversed {
		slices.Reverse(c.collected)
	}
	*dst = append(*dst, c.collected...)
	c.collected = nil
	if t.tracking {
		x.transferFrom(c, reversed)
		x.solveAssumedFrom(c, c.sib1 != prev)
	}
}

// runEnd walks from cur over non-empty siblings and returns the last of them
// followed by the empty sibling (or nil) that ends the run.
func runEnd(prev, cur *Node) (last, boundary *Node) {
	for cur != nil && !cur.isEmpty() {
		prev, cur = advance(prev, cur)
	}
	return prev, cur
}

func (t *Tree) templateQ1(x *Node, final bool) bool {
	if x.kind != KindQ {
		return false
	}
	for prev, cur := (*Node)(nil), x.end1; cur != nil; prev, cur = advance(prev, cur) {
		if !cur.isFull() {
			return false
		}
	}
	x.pert = Full
	if !final {
		x.setFullInParent()
	}
	if t.collecting {
		x.collected, x.collected2 = nil, nil
		for prev, cur := (*Node)(nil), x.end1; cur != nil; prev, cur = advance(prev, cur) {
			t.take(&x.collected, x, cur, prev, false)
		}
	}
	return true
}

// q2Sequence reports whether the pertinent children of x are a full run
// from one end, optionally closed by a singly partial child.
func (x *Node) q2Sequence() bool {
	if x.cd != nil {
		return false
	}
	e1, e2 := x.end1, x.end2
	if !e1.isFull() && !e2.isFull() {
		return (e1.isSinglyPartial() || e2.isSinglyPartial()) && x.pertChildren == 1
	}
	start := e1
	if !e1.isFull() {
		start = e2
	}
	found := 0
	for prev, cur := (*Node)(nil), start; cur != nil; prev, cur = advance(prev, cur) {
		if cur.isFull() {
			found++
			continue
		}
		if cur.isCDPartial() {
			return false
		}
		if cur.isSinglyPartial() {
			found++
		}
		break
	}
	return found == x.pertChildren
}

func (t *Tree) templateQ2(x *Node, final bool) (bool, bool) {
	if x.kind != KindQ || !x.q2Sequence() {
		return false, false
	}
	partial := x.sp1
	if partial == nil {
		partial = x.sp2
	}
	if t.collecting {
		t.collectQ2(x, partial)
	}
	if partial != nil {
		t.flatten(x, partial, true)
	}
	x.pert = SinglyPartial
	earlyOut := false
	if !final {
		earlyOut = !x.setSinglyPartialInParent()
	}
	return true, earlyOut
}

// collectQ2 reads the pertinent run of x from its outer end inwards, so the
// partial child comes last with its full side first.
func (t *Tree) collectQ2(x, partial *Node) {
	x.collected, x.collected2 = nil, nil
	if x.end1.isFull() || (x.end1.isSinglyPartial() && x.end2.isEmpty()) {
		for prev, cur := (*Node)(nil), x.end1; cur != nil && !cur.isEmpty(); prev, cur = advance(prev, cur) {
			t.take(&x.collected, x, cur, prev, cur == partial && !cur.end1.isFull())
		}
		return
	}
	last, boundary := runEnd(nil, x.end2)
	for prev, cur := boundary, last; cur != nil; prev, cur = advance(prev, cur) {
		t.take(&x.collected, x, cur, prev, cur == partial && cur.end1.isFull())
	}
}

// flatten replaces the singly partial Q-child c of p by c's own children,
// oriented so that c's full side faces p's pertinent siblings. With normal
// unset (complementary reductions) only full siblings count as pertinent.
func (t *Tree) flatten(p, c *Node, normal bool) {
	if p.sp1 == c {
		p.sp1 = nil
	} else if p.sp2 == c {
		p.sp2 = nil
	}
	p.pertChildren--
	p.pertLeaves -= c.pertLeaves

	start := c.end2
	if c.endChild1Full() {
		start = c.end1
	}
	for prev, cur := (*Node)(nil), start; cur != nil && !cur.isEmpty(); prev, cur = advance(prev, cur) {
		cur.parent = p
		p.pertChildren++
		p.pertLeaves += cur.pertLeaves
		cur.discardFullLink()
		cur.createFullLink(p)
	}

	e1, e2 := c.end1, c.end2
	end1Full := e1.isFull()
	faces := func(s *Node) (near, far *Node) {
		full := s.isFull() || (normal && s.isSinglyPartial())
		if end1Full == full {
			return e1, e2
		}
		return e2, e1
	}
	if p.end1 == c || p.end2 == c {
		s := c.sib1
		if s == nil {
			s = c.sib2
		}
		near, far := faces(s)
		s.relink(c, near)
		fillSlot(near, s)
		if p.end1 == c {
			p.end1 = far
		} else {
			p.end2 = far
		}
		far.parent = p
	} else {
		s1, s2 := c.sib1, c.sib2
		n1, n2 := faces(s1)
		s1.relink(c, n1)
		fillSlot(n1, s1)
		s2.relink(c, n2)
		fillSlot(n2, s2)
	}
	c.sib1, c.sib2, c.parent = nil, nil, nil
	c.end1, c.end2 = nil, nil
	t.retire(c)
}

// fillSlot links s into the free sibling slot of the end child n.
func fillSlot(n, s *Node) {
	if n.sib1 == nil {
		n.sib1 = s
	} else {
		n.sib2 = s
	}
}

// countRun counts the full children from cur onwards plus a singly partial
// child closing the run.
func countRun(prev, cur *Node) int {
	n := 0
	for ; cur != nil; prev, cur = advance(prev, cur) {
		if cur.isFull() {
			n++
			continue
		}
		if cur.isSinglyPartial() {
			n++
		}
		break
	}
	return n
}

func (x *Node) q3Sequence() bool {
	if x.cd != nil {
		return false
	}
	if len(x.full) == 0 {
		return x.sp1 != nil && x.sp2 != nil && x.pertChildren == 2 &&
			(x.sp1.sib1 == x.sp2 || x.sp1.sib2 == x.sp2)
	}
	f := x.full[len(x.full)-1]
	return countRun(f.sib1, f)+countRun(f, f.sib1) == x.pertChildren
}

func (t *Tree) templateQ3(x *Node) bool {
	if (x.kind != KindQ && x.kind != KindVirtualRoot) || !x.q3Sequence() {
		return false
	}
	if t.collecting {
		if x.kind == KindQ {
			t.collectQ3(x)
		} else {
			t.collectQ3Virtual(x)
		}
	}
	if x.sp1 != nil {
		t.flatten(x, x.sp1, true)
	}
	if x.sp2 != nil {
		t.flatten(x, x.sp2, true)
	}
	x.pert = DoublyPartial
	return true
}

// collectRun reads a doubly partial run starting at cur. The partial child
// read first is oriented empty side first, the one read last full side
// first. It returns the position just past the run.
func (t *Tree) collectRun(x, prev, cur *Node) (*Node, *Node) {
	for first := true; cur != nil && !cur.isEmpty(); first = false {
		rev := false
		if cur == x.sp1 || cur == x.sp2 {
			rev = cur.end1.isFull() == first
		}
		t.take(&x.collected, x, cur, prev, rev)
		prev, cur = advance(prev, cur)
	}
	return prev, cur
}

func (t *Tree) collectQ3(x *Node) {
	x.collected, x.collected2 = nil, nil
	prev, cur := (*Node)(nil), x.end1
	for cur != nil && cur.isEmpty() {
		prev, cur = advance(prev, cur)
	}
	t.collectRun(x, prev, cur)
}

// collectQ3Virtual reads the run under a virtual root in an arbitrary
// direction and parks the resulting orientations on the first sibling past
// the run, to be resolved once its real parent is reduced.
func (t *Tree) collectQ3Virtual(x *Node) {
	x.collected, x.collected2 = nil, nil
	var prev, cur *Node
	if len(x.full) == 0 {
		cur = x.sp1
		prev = cur.otherSibling(x.sp2)
	} else {
		f := x.full[len(x.full)-1]
		last, boundary := runEnd(f.sib2, f)
		prev, cur = boundary, last
	}
	prev, next := t.collectRun(x, prev, cur)
	t.nextSib = next
	t.nextSibReversed = next.sib1 != prev
	if t.tracking {
		next.assumeFrom(x, t.nextSibReversed)
	}
}

// q4Sequence reports whether the pertinent children of x are two runs, one
// at each end, each optionally closed by a singly partial child.
func (x *Node) q4Sequence() bool {
	if x.cd != nil {
		return false
	}
	found := 0
	var part *Node
	for prev, cur := (*Node)(nil), x.end1; cur != nil; prev, cur = advance(prev, cur) {
		if cur.isFull() {
			found++
			continue
		}
		if cur.isSinglyPartial() {
			part = cur
			found++
		}
		break
	}
	for prev, cur := (*Node)(nil), x.end2; cur != nil; prev, cur = advance(prev, cur) {
		if cur.isFull() {
			found++
			continue
		}
		if cur.isSinglyPartial() && cur != part {
			found++
		}
		break
	}
	return found == x.pertChildren
}

func (t *Tree) templateQ4(x *Node, final bool) (bool, bool) {
	if x.kind != KindQ || !x.q4Sequence() {
		return false, false
	}
	if t.collecting {
		t.collectQ4(x)
	}
	if x.sp1 != nil {
		t.flatten(x, x.sp1, false)
	}
	if x.sp2 != nil {
		t.flatten(x, x.sp2, false)
	}
	x.pert = CDPartial
	if t.cdRoot != nil {
		return true, true
	}
	t.cdRoot = x
	if !final {
		return true, !x.setCDPartialInParent()
	}
	return true, false
}

// collectQ4 reads the run at end1 outside in onto the first side, and the
// run at end2 inside out onto the second, so that side two followed by side
// one is the pertinent sequence around the empty gap.
func (t *Tree) collectQ4(x *Node) {
	x.collected, x.collected2 = nil, nil
	var part *Node
	for prev, cur := (*Node)(nil), x.end1; cur != nil && !cur.isEmpty(); prev, cur = advance(prev, cur) {
		if cur.isSinglyPartial() {
			part = cur
			t.take(&x.collected, x, cur, prev, !cur.end1.isFull())
			break
		}
		t.take(&x.collected, x, cur, prev, false)
	}
	prev, cur := (*Node)(nil), x.end2
	for cur != nil && !cur.isEmpty() && cur != part {
		prev, cur = advance(prev, cur)
	}
	for prev, cur = cur, prev; cur != nil; prev, cur = advance(prev, cur) {
		t.take(&x.collected2, x, cur, prev, cur.isSinglyPartial() && cur.end1.isFull())
	}
}

func (t *Tree) templateQ5(x *Node, final bool) (bool, bool) {
	if x.kind != KindQ || x.cd == nil || x.sp1 != nil || x.sp2 != nil {
		return false, false
	}
	for prev, cur := (*Node)(nil), x.end1; cur != nil; prev, cur = advance(prev, cur) {
		if cur.isEmpty() {
			return false, false
		}
	}
	if t.collecting {
		t.collectQ5(x)
	}
	x.pert = CDPartial
	earlyOut := false
	if !final {
		earlyOut = !x.setCDPartialInParent()
	}
	return true, earlyOut
}

// collectQ5 puts the children before the complementary child on side one
// and those after it on side two.
func (t *Tree) collectQ5(x *Node) {
	x.collected, x.collected2 = nil, nil
	side := &x.collected
	for prev, cur := (*Node)(nil), x.end1; cur != nil; prev, cur = advance(prev, cur) {
		if cur.isCDPartial() {
			t.take(&x.collected, x, cur, prev, false)
			x.collected2 = append(x.collected2, cur.collected2...)
			cur.collected2 = nil
			side = &x.collected2
			continue
		}
		t.take(side, x, cur, prev, false)
	}
}
