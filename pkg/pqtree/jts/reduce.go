package jts

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/matzehuels/planarity/pkg/graph"
)

var (
	// ErrNoLeaves is returned when a reduction is asked for an empty set.
	ErrNoLeaves = errors.New("reduction needs at least one leaf")

	// ErrUnknownLeaf is returned when an edge has no live leaf in the tree.
	ErrUnknownLeaf = errors.New("edge has no leaf")

	// ErrTemplateMatch is returned when a node left after discarding
	// matches no template. It indicates a broken tree.
	ErrTemplateMatch = errors.New("no template matches pertinent node")
)

// Reduction is the outcome of [Tree.Reduce].
type Reduction struct {
	// Root is the pertinent root after the templates ran.
	Root *Node
	// Discarded lists the edges whose leaves were dropped, in input order.
	Discarded []graph.EdgeID
}

// Reduce makes the leaves of edges consecutive, dropping the cheapest set of
// them that stands in the way. Dropped edges are reported in the result and
// by [Tree.Discarded].
func (t *Tree) Reduce(edges []graph.EdgeID) (*Reduction, error) {
	if len(edges) == 0 {
		return nil, ErrNoLeaves
	}
	leaves := make([]*Node, len(edges))
	for i, e := range edges {
		l := t.Leaf(e)
		if l == nil || t.removed[e] {
			return nil, fmt.Errorf("%w: edge %d", ErrUnknownLeaf, e)
		}
		leaves[i] = l
	}

	t.gen++
	root := t.bubbleUp(leaves)
	t.computeCosts(leaves, root)
	t.assignRoles(root)
	t.discard(leaves, root)

	// Pruning may have moved a surviving leaf into its former parent.
	r := &Reduction{}
	var kept []*Node
	for _, e := range edges {
		if t.removed[e] {
			r.Discarded = append(r.Discarded, e)
			continue
		}
		kept = append(kept, t.leafOf[e])
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: every leaf discarded", ErrTemplateMatch)
	}
	root = t.pertinentRoot(kept[0])

	root, err := t.applyTemplates(kept, root)
	if err != nil {
		return nil, err
	}
	r.Root = root
	return r, nil
}

// bubbleUp marks the ancestors of leaves pertinent and counts their
// pertinent children, stopping once a single node accounts for all leaves.
func (t *Tree) bubbleUp(leaves []*Node) *Node {
	q := linkedlistqueue.New()
	for _, l := range leaves {
		l.reset()
		q.Enqueue(l)
	}
	open := len(leaves)
	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(*Node)
		if x.pertChildren > 0 {
			open -= x.pertChildren - 1
		}
		if q.Empty() && open == 1 {
			break
		}
		if p := x.parent; p != nil {
			if !p.isPertinent() {
				p.reset()
				q.Enqueue(p)
			}
			p.pertChildren++
		}
	}
	return t.pertinentRoot(leaves[0])
}

// pertinentRoot returns the lowest pertinent node above leaf that still
// has more than one pertinent child, or the leaf itself.
func (t *Tree) pertinentRoot(leaf *Node) *Node {
	var path []*Node
	for n := leaf; ; n = n.parent {
		path = append(path, n)
		if n.parent == nil || !n.parent.isPertinent() {
			break
		}
	}
	if len(path) == 1 {
		return leaf
	}
	for i := len(path) - 1; i >= 0; i-- {
		if n := path[i]; n.kind == KindL || n.pertChildren > 1 {
			return n
		}
	}
	return nil
}

// computeCosts costs every pertinent node bottom up.
func (t *Tree) computeCosts(leaves []*Node, root *Node) {
	q := linkedlistqueue.New()
	for _, l := range leaves {
		q.Enqueue(l)
	}
	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(*Node)
		if x != root {
			countUp(q, x)
		}
		x.calculateCosts()
	}
}

// assignRoles hands roles down from the root breadth first.
func (t *Tree) assignRoles(root *Node) {
	root.decideRootRole()
	q := linkedlistqueue.New()
	q.Enqueue(root)
	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(*Node)
		x.decideChildRoles()
		for _, c := range x.children {
			if c.isPertinent() {
				q.Enqueue(c)
			}
		}
	}
}

// discard drops the leaves whose role is W bottom up and repairs the
// nodes above them.
func (t *Tree) discard(leaves []*Node, root *Node) {
	q := linkedlistqueue.New()
	for _, l := range leaves {
		q.Enqueue(l)
	}
	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(*Node)
		if x != root {
			if p := x.parent; p != nil {
				p.processed--
				if p.processed == 0 {
					q.Enqueue(p)
				}
			}
		}
		t.prune(x)
	}
}

// prune removes x when it lost its reason to exist, and otherwise updates
// its pertinence after its children were pruned.
func (t *Tree) prune(x *Node) {
	switch {
	case x.kind == KindL:
		if x.role == roleW {
			t.removed[x.edge] = true
			t.leafOf[x.edge] = nil
			x.unlinkFromParent()
		}
		return
	case len(x.children) == 0:
		x.unlinkFromParent()
		return
	case len(x.children) == 1:
		t.bringUpOnlyChild(x)
	}
	if x.kind == KindL && x.isFull() {
		return
	}
	if x.pertChildren == 0 {
		if x.parent != nil {
			x.parent.pertChildren--
		}
		x.pert = Empty
	}
}

func countUp(q *linkedlistqueue.Queue, x *Node) {
	if p := x.parent; p != nil {
		p.processed++
		if p.processed == p.pertChildren {
			q.Enqueue(p)
		}
	}
}

// applyTemplates rewrites the pertinent subtree bottom up and returns the
// pertinent root, which P2, P4 and P6 may move.
func (t *Tree) applyTemplates(leaves []*Node, root *Node) (*Node, error) {
	q := linkedlistqueue.New()
	for _, l := range leaves {
		q.Enqueue(l)
	}
	pr := root
	for !q.Empty() {
		v, _ := q.Dequeue()
		x := v.(*Node)
		var ok bool
		if x != root {
			countUp(q, x)
			ok = t.templateL1(x) || t.templateP1(x) || t.templateP3(x) ||
				t.templateP5(x) || t.templateP7(x) || t.templateP8(x) ||
				t.templateQ1(x) || t.templateQ2(x) || t.templateQ4(x) ||
				t.templateQ5(x)
		} else {
			ok = t.templateL1(x) || t.templateP1(x) || t.templateP2(x, &pr) ||
				t.templateP4(x, &pr) || t.templateP6(x, &pr) || t.templateP8(x) ||
				t.templateQ1(x) || t.templateQ2(x) || t.templateQ3(x) ||
				t.templateQ4(x) || t.templateQ5(x)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTemplateMatch, x)
		}
	}
	return pr, nil
}
