package bl

import (
	"slices"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Templates return whether they matched. Those used below the pertinent root
// also report earlyOut: the node matched, but its parent now has more
// partial children than any template accepts.

func (t *Tree) templateL1(x *Node, final bool) bool {
	if x.kind != KindL {
		return false
	}
	x.pert = Full
	if !final {
		x.setFullInParent()
	}
	if t.collecting {
		x.collected = []graph.EdgeID{x.edge}
		x.collected2 = nil
	}
	return true
}

func (x *Node) noPartialChild() bool {
	return x.sp1 == nil && x.sp2 == nil && x.cd == nil
}

func (t *Tree) templateP1(x *Node, final bool) bool {
	if x.kind != KindP || len(x.full) != len(x.children) || !x.noPartialChild() {
		return false
	}
	x.pert = Full
	if t.collecting {
		x.collected, x.collected2 = nil, nil
		t.absorbFull(x, x.full, false)
	}
	if !final {
		x.setFullInParent()
	}
	return true
}

func (t *Tree) templateP2(x *Node, root **Node) bool {
	if x.kind != KindP || len(x.full) < 2 || len(x.full) >= len(x.children) || !x.noPartialChild() {
		return false
	}
	fulls := t.detachFull(x)
	r := t.makeP(fulls)
	r.linkToP(x)
	t.absorbFull(r, fulls, false)
	*root = r
	return true
}

func (t *Tree) templateP3(x *Node) (bool, bool) {
	if x.kind != KindP || len(x.full) == 0 || len(x.full) >= len(x.children) || !x.noPartialChild() {
		return false, false
	}
	fulls := t.detachFull(x)
	x.pert = Empty
	f := t.groupFull(fulls)

	host := x
	if len(x.children) > 1 {
		// x keeps its empty children and moves under a new singly
		// partial Q-node [f, x].
		host = t.makeQ()
		t.replace(x, host)
		host.addTwoInitialChildren(f, x)
	} else {
		e := x.children[0]
		e.unlinkFromP()
		x.kind = KindQ
		x.children = nil
		x.addTwoInitialChildren(f, e)
	}
	earlyOut := !host.setSinglyPartialInParent()
	if t.collecting {
		host.collected, host.collected2 = nil, nil
		t.absorbFull(host, fulls, false)
	}
	return true, earlyOut
}

func (x *Node) oneSinglyPartial() *Node {
	switch {
	case x.sp1 != nil && x.sp2 == nil:
		return x.sp1
	case x.sp1 == nil && x.sp2 != nil:
		return x.sp2
	}
	return nil
}

func (t *Tree) templateP4(x *Node, root **Node) bool {
	if x.kind != KindP || x.cd != nil {
		return false
	}
	partial := x.oneSinglyPartial()
	if partial == nil {
		return false
	}
	fulls := t.detachFull(x)
	x.sp1, x.sp2 = nil, nil
	if len(fulls) > 0 {
		t.groupFull(fulls).linkToQEnd(partial, true)
	}
	if len(x.children) == 1 {
		t.bringUpOnlyChild(x)
	}
	*root = partial
	t.absorbFull(partial, fulls, partial.endChild1Full())
	return true
}

func (t *Tree) templateP5(x *Node) (bool, bool) {
	if x.kind != KindP || x.cd != nil {
		return false, false
	}
	sp := x.oneSinglyPartial()
	if sp == nil {
		return false, false
	}
	fulls := t.detachFull(x)
	if len(fulls) > 0 {
		t.groupFull(fulls).linkToQEnd(sp, true)
	}
	switch len(x.children) {
	case 1:
		t.bringUpOnlyChild(x)
	case 2:
		e := x.children[0]
		if e == sp {
			e = x.children[1]
		}
		e.unlinkFromP()
		e.linkToQEnd(sp, false)
		t.bringUpOnlyChild(x)
	default:
		// x keeps its empty children and becomes the empty end of sp.
		sp.unlinkFromP()
		x.pert = Empty
		t.replace(x, sp)
		x.linkToQEnd(sp, false)
	}
	earlyOut := !sp.setSinglyPartialInParent()
	t.absorbFull(sp, fulls, sp.endChild1Full())
	return true, earlyOut
}

func (t *Tree) templateP6(x *Node, root **Node) bool {
	if x.kind != KindP || x.cd != nil || x.sp1 == nil || x.sp2 == nil {
		return false
	}
	fulls := t.detachFull(x)
	base, absorbed := x.sp1, x.sp2
	if len(fulls) > 0 {
		t.groupFull(fulls).linkToQEnd(base, true)
	}
	t.absorbFull(base, fulls, base.endChild1Full())
	absorbed.unlinkFromP()
	t.concatenate(base, absorbed, true)
	if len(x.children) == 1 {
		t.bringUpOnlyChild(x)
	}
	base.pert = DoublyPartial
	*root = base
	return true
}

func (t *Tree) templateP7(x *Node) (bool, bool) {
	if x.kind != KindP || x.cd != nil || x.sp1 == nil || x.sp2 == nil {
		return false, false
	}
	if len(x.children)-2-len(x.full) > 1 {
		return t.templateP7Reuse(x)
	}
	base, absorbed := x.sp1, x.sp2
	for _, c := range x.children {
		if c != base && c != absorbed && !c.isFull() {
			c.unlinkFromP()
			c.linkToQEnd(base, false)
			break
		}
	}
	t.absorbFull(base, x.full, base.endChild1Full())
	absorbed.unlinkFromP()
	t.concatenate(base, absorbed, false)
	x.sp1, x.sp2 = nil, nil
	base.pert = CDPartial

	earlyOut := t.cdRoot != nil
	if !earlyOut {
		t.cdRoot = base
	}
	if len(x.children) == 1 {
		earlyOut = !t.bringUpOnlyChild(x).setCDPartialInParent() || earlyOut
	} else {
		base.setCDPartialInParent()
		earlyOut = !x.setCDPartialInParent() || earlyOut
		x.pert = CDPartial
		t.liftCollected(x, base)
	}
	return true, earlyOut
}

// templateP7Reuse handles P7 when x has several empty children: x keeps
// them and becomes the empty middle of the concatenated Q-node, and a new
// P-node takes x's place holding the full children and the Q-node.
func (t *Tree) templateP7Reuse(x *Node) (bool, bool) {
	fulls := t.detachFull(x)
	base, absorbed := x.sp1, x.sp2
	base.unlinkFromP()
	absorbed.unlinkFromP()
	x.pert = Empty

	cd := t.makeP(fulls)
	t.replace(x, cd)
	t.absorbFull(base, fulls, base.endChild1Full())
	x.linkToQEnd(base, false)
	t.concatenate(base, absorbed, false)
	base.pert = CDPartial
	base.linkToP(cd)

	earlyOut := t.cdRoot != nil
	if !earlyOut {
		t.cdRoot = base
	}
	if len(cd.children) == 1 {
		earlyOut = !t.bringUpOnlyChild(cd).setCDPartialInParent() || earlyOut
	} else {
		base.setCDPartialInParent()
		earlyOut = !cd.setCDPartialInParent() || earlyOut
		cd.pert = CDPartial
		t.liftCollected(cd, base)
	}
	return true, earlyOut
}

func (t *Tree) templateP8(x *Node, final bool) (bool, bool) {
	if x.kind != KindP || x.cd == nil || x.sp1 != nil || x.sp2 != nil || x.pertChildren != len(x.children) {
		return false, false
	}
	x.pert = CDPartial
	earlyOut := false
	if !final {
		earlyOut = !x.setCDPartialInParent()
	}
	if t.collecting {
		cd := x.cd
		x.collected, x.collected2 = nil, nil
		t.absorbFull(x, x.full, false)
		x.collected = append(x.collected, cd.collected...)
		x.collected2 = cd.collected2
		cd.collected, cd.collected2 = nil, nil
	}
	return true, earlyOut
}

// detachFull unlinks the full children of the P-node x and returns them.
func (t *Tree) detachFull(x *Node) []*Node {
	fulls := slices.Clone(x.full)
	for _, c := range fulls {
		c.unlinkFromP()
	}
	return fulls
}

// groupFull returns the single full node, or a new full P-node over several.
func (t *Tree) groupFull(fulls []*Node) *Node {
	if len(fulls) == 1 {
		return fulls[0]
	}
	return t.makeP(fulls)
}

// absorbFull moves the collected edges of fulls into x, in front of what x
// already holds when front is set.
func (t *Tree) absorbFull(x *Node, fulls []*Node, front bool) {
	if !t.collecting {
		return
	}
	var edges []graph.EdgeID
	for _, c := range fulls {
		edges = append(edges, c.collected...)
		c.collected = nil
		if t.tracking {
			x.transferFrom(c, false)
		}
	}
	if front {
		x.collected = append(edges, x.collected...)
	} else {
		x.collected = append(x.collected, edges...)
	}
}

// liftCollected hands the edges gathered on the complementary Q-node cd up
// to the P-node above it, which is what its own parent collects from.
func (t *Tree) liftCollected(p, cd *Node) {
	if !t.collecting {
		return
	}
	p.collected = append(p.collected, cd.collected...)
	p.collected2 = append(cd.collected2, p.collected2...)
	cd.collected, cd.collected2 = nil, nil
}

// concatenate merges the singly partial Q-node absorbed into main, joining
// their full ends (P6) or their empty ends (P7), and drops absorbed.
func (t *Tree) concatenate(main, absorbed *Node, fullEnd bool) {
	mainEnd1Full := main.end1.isFull()
	absEnd1Full := absorbed.end1.isFull()
	mainFull, mainEmpty := main.end1, main.end2
	if !mainEnd1Full {
		mainFull, mainEmpty = mainEmpty, mainFull
	}
	absFull, absEmpty := absorbed.end1, absorbed.end2
	if !absEnd1Full {
		absFull, absEmpty = absEmpty, absFull
	}

	if t.collecting {
		ac := absorbed.collected
		switch {
		case fullEnd:
			if mainEnd1Full == absEnd1Full {
				slices.Reverse(ac)
			}
			if mainEnd1Full {
				main.collected = append(ac, main.collected...)
			} else {
				main.collected = append(main.collected, ac...)
			}
		case mainEnd1Full:
			if absEnd1Full {
				slices.Reverse(ac)
			}
			main.collected2 = append(ac, main.collected2...)
		default:
			if !absEnd1Full {
				slices.Reverse(ac)
			}
			main.collected2 = append(main.collected, main.collected2...)
			main.collected = ac
		}
		absorbed.collected = nil
	}

	for prev, cur := (*Node)(nil), absFull; cur != nil && !cur.isEmpty(); prev, cur = advance(prev, cur) {
		cur.parent = main
	}
	if fullEnd {
		linkSiblings(mainFull, absFull)
		if mainEnd1Full {
			main.end1 = absEmpty
		} else {
			main.end2 = absEmpty
		}
		absEmpty.parent = main
	} else {
		linkSiblings(mainEmpty, absEmpty)
		if mainEnd1Full {
			main.end2 = absFull
		} else {
			main.end1 = absFull
		}
		absFull.parent = main
	}

	main.pertProcessed += absorbed.pertProcessed
	main.pertChildren += absorbed.pertChildren
	main.pertLeaves += absorbed.pertLeaves
	for _, f := range slices.Clone(absorbed.full) {
		f.discardFullLink()
		f.createFullLink(main)
	}
	if t.tracking {
		main.transferFrom(absorbed, mainEnd1Full == absEnd1Full)
	}
	t.retire(absorbed)
}
