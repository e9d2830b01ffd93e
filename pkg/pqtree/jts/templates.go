package jts

import "slices"

// Templates run after discarding, so every pertinent node left matches one.
// Each returns false without touching the tree when its pattern does not
// apply.

func (t *Tree) templateL1(x *Node) bool {
	if x.kind != KindL {
		return false
	}
	x.setFullInParent()
	x.pert = Full
	return true
}

func (t *Tree) templateP1(x *Node) bool {
	if x.kind != KindP || x.fullChildren != len(x.children) ||
		x.partial1 != nil || x.partial2 != nil {
		return false
	}
	x.setFullInParent()
	x.pert = Full
	return true
}

// templateP2 gathers the full children of the root under a new P-node,
// which becomes the pertinent root.
func (t *Tree) templateP2(x *Node, pr **Node) bool {
	if x.kind != KindP || x.fullChildren < 2 ||
		x.partial1 != nil || x.partial2 != nil || x.cdChild != nil {
		return false
	}
	full, _ := x.splitFullEmpty()
	unlinkAll(full)
	n := t.makeP(full)
	n.link(x)
	*pr = n
	return true
}

// templateP3 turns x into the Q-node [full, empty].
func (t *Tree) templateP3(x *Node) bool {
	if x.kind != KindP || x.fullChildren < 1 || x.fullChildren >= len(x.children) ||
		x.partial1 != nil || x.partial2 != nil || x.cdChild != nil {
		return false
	}
	full, empty := x.splitFullEmpty()
	unlinkAll(full)
	unlinkAll(empty)
	t.group(full).link(x)
	t.group(empty).link(x)
	x.kind = KindQ
	x.pert = Partial
	x.setPartialInParent()
	return true
}

func (t *Tree) templateP4(x *Node, pr **Node) bool {
	if x.kind != KindP {
		return false
	}
	p := x.onePartial()
	if p == nil {
		return false
	}
	full, _ := x.splitFullEmpty()
	unlinkAll(full)
	if len(full) > 0 {
		t.group(full).linkFullEnd(p)
	}
	if len(x.children) == 1 {
		t.bringUpOnlyChild(x)
		*pr = x
	} else {
		*pr = p
	}
	return true
}

// templateP5 folds the full and the empty children of x into the ends of its
// only partial child and lifts that child into x.
func (t *Tree) templateP5(x *Node) bool {
	if x.kind != KindP {
		return false
	}
	p := x.onePartial()
	if p == nil {
		return false
	}
	full, empty := x.splitFullEmpty()
	unlinkAll(full)
	unlinkAll(empty)
	if len(full) > 0 {
		t.group(full).linkFullEnd(p)
	}
	if len(empty) > 0 {
		t.group(empty).linkEmptyEnd(p)
	}
	t.bringUpOnlyChild(x)
	x.pert = Partial
	x.setPartialInParent()
	return true
}

// templateP6 joins the two partial children of the root full end to full
// end, with the other full children in between.
func (t *Tree) templateP6(x *Node, pr **Node) bool {
	if x.kind != KindP || x.partial1 == nil || x.partial2 == nil {
		return false
	}
	full, _ := x.splitFullEmpty()
	unlinkAll(full)
	base, absorbed := x.partial1, x.partial2
	if len(full) > 0 {
		t.group(full).linkFullEnd(base)
	}
	absorbed.unlinkFromParent()
	moveChildren(base, absorbed, base.headFull(), !absorbed.headFull())

	if len(x.children) == 1 {
		t.bringUpOnlyChild(x)
		*pr = x
	} else {
		*pr = base
	}
	return true
}

// templateP7 joins the two partial children of x empty end to empty end,
// with the other empty children in between, giving a complementary run.
func (t *Tree) templateP7(x *Node) bool {
	if x.kind != KindP || x.partial1 == nil || x.partial2 == nil {
		return false
	}
	_, empty := x.splitFullEmpty()
	unlinkAll(empty)
	base, absorbed := x.partial1, x.partial2
	if len(empty) > 0 {
		t.group(empty).linkEmptyEnd(base)
	}
	absorbed.unlinkFromParent()
	moveChildren(base, absorbed, !base.headFull(), absorbed.headFull())

	base.pert = CDPartial
	base.setCDPartialInParent()
	if x.partial1 == base {
		x.partial1 = nil
	} else {
		x.partial2 = nil
	}
	if len(x.children) == 1 {
		t.bringUpOnlyChild(x)
	}
	x.pert = CDPartial
	x.setCDPartialInParent()
	return true
}

func (t *Tree) templateP8(x *Node) bool {
	if x.kind != KindP {
		return false
	}
	return x.liftCDPartial()
}

func (t *Tree) templateQ1(x *Node) bool {
	if x.kind != KindQ || x.fullChildren != len(x.children) ||
		x.partial1 != nil || x.partial2 != nil {
		return false
	}
	x.pert = Full
	x.setFullInParent()
	return true
}

// templateQ2 accepts a full run at one end of x, closed by at most one
// partial child, which is flattened into x.
func (t *Tree) templateQ2(x *Node) bool {
	if x.kind != KindQ || !acceptsSequence(x, seqQ2, 5, 6) {
		return false
	}
	p := x.partial1
	if p == nil {
		p = x.partial2
	}
	if p != nil {
		t.flatten(x, p, true)
	}
	x.pert = Partial
	x.setPartialInParent()
	return true
}

// templateQ3 accepts a full run in the middle of the root, closed by up to
// two partial children.
func (t *Tree) templateQ3(x *Node) bool {
	if x.kind != KindQ || !acceptsSequence(x, seqQ3, 2, 3) {
		return false
	}
	if x.partial1 != nil {
		t.flatten(x, x.partial1, true)
	}
	if x.partial2 != nil {
		t.flatten(x, x.partial2, true)
	}
	return true
}

// templateQ4 accepts full runs at both ends of x, each closed by at most one
// partial child.
func (t *Tree) templateQ4(x *Node) bool {
	if x.kind != KindQ || !acceptsSequence(x, seqQ4, 4) {
		return false
	}
	if x.partial1 != nil {
		t.flatten(x, x.partial1, false)
	}
	if x.partial2 != nil {
		t.flatten(x, x.partial2, false)
	}
	x.pert = CDPartial
	x.setCDPartialInParent()
	return true
}

func (t *Tree) templateQ5(x *Node) bool {
	if x.kind != KindQ {
		return false
	}
	return x.liftCDPartial()
}

// liftCDPartial makes x complementary when every child but one is full and
// that one is complementary.
func (x *Node) liftCDPartial() bool {
	c, ok := x.allButOneFull()
	if !ok || !c.isCDPartial() {
		return false
	}
	x.pert = CDPartial
	x.setCDPartialInParent()
	return true
}

func unlinkAll(nodes []*Node) {
	for _, n := range nodes {
		n.unlinkFromParent()
	}
}

// group returns the only node of nodes, or a new P-node over all of them.
func (t *Tree) group(nodes []*Node) *Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return t.makeP(nodes)
}

// moveChildren moves every child of a into m, one at a time to the head of
// m when atHead and to its tail otherwise, taking a's children from the
// back when backward.
func moveChildren(m, a *Node, atHead, backward bool) {
	kids := slices.Clone(a.children)
	if backward {
		slices.Reverse(kids)
	}
	for _, c := range kids {
		c.unlinkFromParent()
		if atHead {
			c.linkAt(m, 0)
		} else {
			c.link(m)
		}
	}
}

// flatten replaces the partial Q-node c by its children inside the Q-node
// p, oriented so that c's full end faces its full or partial neighbour.
// With fullInMiddle unset a partial neighbour is met by c's empty end.
func (t *Tree) flatten(p, c *Node, fullInMiddle bool) {
	i := c.index()
	head, tail := c.children[0], c.children[len(c.children)-1]
	var reverse bool
	if i > 0 {
		s := p.children[i-1]
		end := head
		if fullInMiddle {
			end = tail
		}
		reverse = (s.isFull() && tail.isFull()) ||
			(s.isEmpty() && tail.isEmpty()) ||
			(s.isPartial() && end.isFull())
	} else {
		s := p.children[1]
		end := tail
		if fullInMiddle {
			end = head
		}
		reverse = (s.isFull() && head.isFull()) ||
			(s.isEmpty() && head.isEmpty()) ||
			(s.isPartial() && end.isFull())
	}

	c.unlinkFromParent()
	kids := slices.Clone(c.children)
	if reverse {
		slices.Reverse(kids)
	}
	for k, gc := range kids {
		gc.unlinkFromParent()
		gc.linkAt(p, i+k)
	}
	c.children = nil
}

// Child classes fed to the sequence automata.
const (
	seqEmpty = iota
	seqPartial
	seqFull
)

// Transition tables indexed by state and child class. State 0 rejects.
var (
	// ^(E*P?F*)|(F*P?E*)$
	seqQ2 = [][3]int{
		1: {2, 3, 4},
		2: {2, 5, 5},
		3: {6, 0, 5},
		4: {6, 6, 4},
		5: {0, 0, 5},
		6: {6, 0, 0},
	}
	// ^E*P?F*P?E*$
	seqQ3 = [][3]int{
		1: {1, 2, 2},
		2: {3, 3, 2},
		3: {3, 0, 0},
	}
	// ^F*P?E*P?F*$
	seqQ4 = [][3]int{
		1: {0, 3, 2},
		2: {3, 3, 2},
		3: {3, 4, 4},
		4: {0, 0, 4},
	}
)

// acceptsSequence runs the children of x through the automaton next from
// state 1 and reports whether it stops in one of final.
func acceptsSequence(x *Node, next [][3]int, final ...int) bool {
	state := 1
	for _, c := range x.children {
		var class int
		switch {
		case c.isFull():
			class = seqFull
		case c.isPartial():
			class = seqPartial
		case c.isEmpty():
			class = seqEmpty
		default:
			return false
		}
		state = next[state][class]
		if state == 0 {
			return false
		}
	}
	return slices.Contains(final, state)
}
