package bl

import "github.com/matzehuels/planarity/pkg/graph"

// orientation records which graph nodes have an edge ordering anchored at a
// tree node. Norm entries read the ordering along the node's sib1→sib2
// direction, Rev entries against it. "In" refers to incoming edge orderings
// seeded by FanOutOrdered, "out" to orderings produced by Collect.
type orientation struct {
	inNorm, inRev   []graph.NodeID
	outNorm, outRev []graph.NodeID
}

// absorb moves every entry of src into o, swapping Norm and Rev when src is
// read against o's direction, and leaves src empty.
func (o *orientation) absorb(src *orientation, reversed bool) {
	if reversed {
		o.inNorm = append(o.inNorm, src.inRev...)
		o.inRev = append(o.inRev, src.inNorm...)
		o.outNorm = append(o.outNorm, src.outRev...)
		o.outRev = append(o.outRev, src.outNorm...)
	} else {
		o.inNorm = append(o.inNorm, src.inNorm...)
		o.inRev = append(o.inRev, src.inRev...)
		o.outNorm = append(o.outNorm, src.outNorm...)
		o.outRev = append(o.outRev, src.outRev...)
	}
	*src = orientation{}
}

func (o *orientation) empty() bool {
	return len(o.inNorm)+len(o.inRev)+len(o.outNorm)+len(o.outRev) == 0
}

// transferFrom takes over the confirmed orientations of c.
func (n *Node) transferFrom(c *Node, reversed bool) {
	n.orient.absorb(&c.orient, reversed)
}

// assumeFrom parks the confirmed orientations of c on n until n's parent
// resolves n's direction.
func (n *Node) assumeFrom(c *Node, reversed bool) {
	n.assumed.absorb(&c.orient, reversed)
}

// solveAssumedFrom confirms the parked orientations of child c on n.
func (n *Node) solveAssumedFrom(c *Node, reversed bool) {
	n.orient.absorb(&c.assumed, reversed)
}

// Flips is the orientation verdict of a completed backward sweep.
type Flips struct {
	// InReversed holds the graph nodes whose incoming edge ordering must be
	// reversed.
	InReversed map[graph.NodeID]bool
	// OutReversed holds the graph nodes whose outgoing edge ordering must be
	// reversed.
	OutReversed map[graph.NodeID]bool
}

// Flips gathers the orientations held by every node still reachable from
// anchor together with those of nodes already deleted from the tree.
func (t *Tree) Flips(anchor *Node) Flips {
	f := Flips{InReversed: map[graph.NodeID]bool{}, OutReversed: map[graph.NodeID]bool{}}
	add := func(o *orientation) {
		for _, v := range o.inRev {
			f.InReversed[v] = true
		}
		for _, v := range o.outRev {
			f.OutReversed[v] = true
		}
	}
	add(&t.retired)
	if anchor != nil {
		t.walk(t.Root(anchor), func(n *Node) { add(&n.orient) })
	}
	return f
}
