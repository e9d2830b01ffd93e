package jts

// calculateCosts sets the discard costs and the pertinence of x from its
// children, which must already be costed.
func (x *Node) calculateCosts() {
	switch {
	case x.kind == KindL:
		x.w, x.h, x.a, x.cd = 1, 0, 0, 0
		x.pert = Full
	case x.allChildrenFull():
		x.w = x.sumW(func(c *Node) bool { return c.isPertinent() })
		x.h, x.a, x.cd = 0, 0, 0
		x.pert = Full
	default:
		if x.kind == KindP {
			x.costsP()
		} else {
			x.costsQ()
		}
		x.pert = Partial
	}
}

// costsP computes the costs of a partial P-node. a takes the cheaper of one
// child made middle-partial and two children made one-sided; a tie goes to
// the single child.
func (x *Node) costsP() {
	sumW := x.sumW(func(c *Node) bool { return c.isPertinent() })
	sumWPartial := x.sumW(func(c *Node) bool { return c.isPartial() })
	maxWminusA := x.findMaxWminusA()
	max1, max2 := x.findTwoMaxWminusH()

	x.w = sumW
	x.h = sumWPartial - max1
	doubleH := sumWPartial - (max1 + max2)
	if x.pertChildren == 1 || sumW-maxWminusA <= doubleH {
		x.singleA = true
		x.a = sumW - maxWminusA
	} else {
		x.singleA = false
		x.a = doubleH
	}
	if c, ok := x.allButOneFull(); ok {
		x.cd = 0
		if c.isPertinent() {
			x.cd = c.cd
		}
	} else {
		x.cd = doubleH
	}
}

func (x *Node) sumW(pick func(*Node) bool) int {
	total := 0
	for _, c := range x.children {
		if pick(c) {
			total += c.w
		}
	}
	return total
}

func (x *Node) findMaxWminusA() int {
	best := 0
	x.maxWminusA = nil
	for _, c := range x.children {
		if c.isPertinent() && best < c.w-c.a {
			best = c.w - c.a
			x.maxWminusA = c
		}
	}
	return best
}

func (x *Node) findTwoMaxWminusH() (max1, max2 int) {
	x.max1WminusH, x.max2WminusH = nil, nil
	for _, c := range x.children {
		if !c.isPartial() {
			continue
		}
		switch d := c.w - c.h; {
		case max1 <= d:
			max2, x.max2WminusH = max1, x.max1WminusH
			max1, x.max1WminusH = d, c
		case max2 == 0:
			max2, x.max2WminusH = d, c
		}
	}
	return max1, max2
}

func (x *Node) costsQ() {
	sumW := x.sumW(func(c *Node) bool { return c.isPertinent() })
	maxWminusA := x.findMaxWminusA()
	maxRun := x.findMaxRunWminusH()

	x.w = sumW
	x.h = x.costHQ()
	if maxWminusA >= maxRun {
		x.singleA = true
		x.a = sumW - maxWminusA
	} else {
		x.singleA = false
		x.a = sumW - maxRun
	}
	x.cd = x.costCDQ()
}

// costHQ keeps the full run at one end of the Q-node x, closed by at most
// one partial child kept one-sided, and discards the rest.
func (x *Node) costHQ() int {
	fwd, fwdBoundary := x.sideH(func(yield func(*Node) bool) {
		for _, c := range x.children {
			if !yield(c) {
				return
			}
		}
	})
	bwd, bwdBoundary := x.sideH(func(yield func(*Node) bool) {
		for i := len(x.children) - 1; i >= 0; i-- {
			if !yield(x.children[i]) {
				return
			}
		}
	})
	if fwd < bwd {
		x.boundaryQH, x.qhFullOnHead = fwdBoundary, true
		return fwd
	}
	x.boundaryQH, x.qhFullOnHead = bwdBoundary, false
	return bwd
}

func (x *Node) sideH(seq func(yield func(*Node) bool)) (cost int, boundary *Node) {
	inRun := true
	seq(func(c *Node) bool {
		switch {
		case !inRun:
			if c.isPertinent() {
				cost += c.w
			}
		case c.isFull():
			boundary = c
		case c.isPartial():
			cost = c.h
			boundary = c
			inRun = false
		case c.isEmpty():
			inRun = false
		}
		return true
	})
	return cost, boundary
}

// findMaxRunWminusH finds the run of full children bounded by partial or
// full children that saves the most when kept, and records its ends.
func (x *Node) findMaxRunWminusH() int {
	best, sum := 0, 0
	counting := false
	var start, prev *Node
	for _, c := range x.children {
		switch {
		case counting && c.isFull():
			sum += c.w
		case counting && c.isPartial():
			sum += c.w - c.h
			if best < sum {
				x.headQA, x.tailQA, best = start, c, sum
			}
			start, sum = c, c.w-c.h
		case counting && c.isEmpty():
			if best < sum {
				x.headQA, x.tailQA, best = start, prev, sum
			}
			counting = false
		case !counting && (c.isFull() || c.isPartial()):
			start, sum = c, c.w-c.h
			counting = true
		}
		prev = c
	}
	if counting && best < sum {
		x.headQA, x.tailQA, best = start, prev, sum
	}
	return best
}

// costCDQ keeps the runs at both ends of the Q-node x, each closed by at
// most one one-sided partial child, and discards the middle.
func (x *Node) costCDQ() int {
	n := len(x.children)
	side1 := -1
	for i, c := range x.children {
		if !c.isFull() {
			side1 = i
			break
		}
	}
	side2 := -1
	for i := n - 1; i >= 0; i-- {
		c := x.children[i]
		if c.isFull() {
			continue
		}
		if i == side1 {
			if c.isPartial() {
				return c.cd
			}
			return 0
		}
		side2 = i
		break
	}
	sum := 0
	for i := side2; i >= 0; i-- {
		c := x.children[i]
		switch {
		case i == side2:
			if c.isPartial() {
				sum += c.h
			}
		case i == side1:
			if c.isPartial() {
				sum += c.h
			}
			return sum
		case c.isPertinent():
			sum += c.w
		}
	}
	return sum
}

// decideRootRole picks the role of the pertinent root. Only the tree root
// may become complementary. Ties go to the less restrictive role.
func (x *Node) decideRootRole() {
	switch {
	case x.isFull():
		x.role = roleB
	case x.parent == nil && x.cd < x.h && x.cd < x.a:
		x.role = roleCD
	case x.h < x.a:
		x.role = roleH
	default:
		x.role = roleA
	}
}

// decideChildRoles hands the roles of x's pertinent children down from the
// role of x and the choices its cost computation recorded.
func (x *Node) decideChildRoles() {
	switch x.role {
	case roleB:
		for _, c := range x.children {
			if c.isFull() {
				c.role = roleB
			}
		}
		return
	case roleW:
		for _, c := range x.children {
			if c.isPertinent() {
				c.role = roleW
			}
		}
		return
	}
	switch {
	case x.kind == KindP && x.role == roleH:
		x.rolesPH()
	case x.kind == KindP && x.role == roleA:
		x.rolesPA()
	case x.kind == KindP && x.role == roleCD:
		x.rolesPCD()
	case x.kind == KindQ && x.role == roleH:
		x.rolesQH()
	case x.kind == KindQ && x.role == roleA:
		x.rolesQA()
	case x.kind == KindQ && x.role == roleCD:
		x.rolesQCD()
	}
}

func keepOr(c *Node, r role) role {
	if c.isFull() {
		return roleB
	}
	return r
}

func (x *Node) rolesPH() {
	for _, c := range x.children {
		switch {
		case c.isFull():
			c.role = roleB
		case c.isPartial() && c == x.max1WminusH:
			c.role = roleH
		case c.isPartial():
			c.role = roleW
		}
	}
}

// rolesTwoH keeps every full child and the two partial children with the
// largest saving one-sided. Other partial children are discarded.
func (x *Node) rolesTwoH() {
	for _, c := range x.children {
		switch {
		case c.isPartial() && (c == x.max1WminusH || c == x.max2WminusH):
			c.role = roleH
		case c.isPartial():
			c.role = roleW
		case c.isFull():
			c.role = roleB
		}
	}
}

// rolesSingleA keeps only the child with the largest saving, middle-partial,
// and discards every other pertinent child.
func (x *Node) rolesSingleA() {
	for _, c := range x.children {
		switch {
		case !c.isPertinent():
		case c == x.maxWminusA:
			c.role = keepOr(c, roleA)
		default:
			c.role = roleW
		}
	}
}

func (x *Node) rolesPA() {
	if x.singleA {
		x.rolesSingleA()
		return
	}
	x.rolesTwoH()
}

// rolesOneCD keeps the full children and makes the only other child
// complementary.
func (x *Node) rolesOneCD(other *Node) {
	for _, c := range x.children {
		switch {
		case !c.isPertinent():
		case c == other:
			c.role = roleCD
		default:
			c.role = roleB
		}
	}
}

func (x *Node) rolesPCD() {
	if c, ok := x.allButOneFull(); ok {
		x.rolesOneCD(c)
		return
	}
	x.rolesTwoH()
}

func (x *Node) rolesQH() {
	if x.boundaryQH == nil {
		for _, c := range x.children {
			if c.isPertinent() {
				c.role = roleW
			}
		}
		return
	}
	if x.qhFullOnHead {
		kept := true
		for _, c := range x.children {
			switch {
			case kept && c == x.boundaryQH:
				c.role = keepOr(c, roleH)
				kept = false
			case kept:
				c.role = roleB
			case c.isPertinent():
				c.role = roleW
			}
		}
		return
	}
	kept := false
	for _, c := range x.children {
		switch {
		case !c.isPertinent():
		case kept:
			c.role = roleB
		case c == x.boundaryQH:
			c.role = keepOr(c, roleH)
			kept = true
		default:
			c.role = roleW
		}
	}
}

func (x *Node) rolesQA() {
	if x.singleA {
		x.rolesSingleA()
		return
	}
	inRun := false
	for _, c := range x.children {
		switch {
		case !c.isPertinent():
		case !inRun && c == x.headQA:
			c.role = keepOr(c, roleH)
			inRun = x.headQA != x.tailQA
		case !inRun:
			c.role = roleW
		case c == x.tailQA:
			c.role = keepOr(c, roleH)
			inRun = false
		default:
			c.role = roleB
		}
	}
}

func (x *Node) rolesQCD() {
	if c, ok := x.allButOneFull(); ok {
		x.rolesOneCD(c)
		return
	}
	stop := 0
	for _, c := range x.children {
		stop++
		if c.isFull() {
			c.role = roleB
			continue
		}
		if c.isPartial() {
			c.role = roleH
			break
		}
		stop--
		break
	}
	discard := false
	for i := len(x.children) - 1; i >= stop; i-- {
		c := x.children[i]
		switch {
		case discard:
			if c.isPertinent() {
				c.role = roleW
			}
		case c.isFull():
			c.role = roleB
		case c.isPartial():
			c.role = roleH
			discard = true
		default:
			discard = true
		}
	}
}
