package jts

import "github.com/matzehuels/planarity/pkg/graph"

// Remove deletes the full leaves of a finished reduction together with the
// nodes above them that became useless, and returns an empty P-node placed
// where those leaves were, ready for [Tree.FanOut].
func (t *Tree) Remove(r *Reduction) *Node {
	root := r.Root
	switch {
	case root.kind == KindL:
		t.leafOf[root.edge] = nil
		t.resetToAttachment(root)
		return root
	case root.pert == CDPartial:
		return t.removeComplementary(root)
	}

	// Only the first full run goes; templates left at most one.
	pos := -1
	for i := 0; i < len(root.children); {
		if c := root.children[i]; c.isFull() {
			t.removeSubtree(c)
			pos = i
			continue
		}
		if pos >= 0 {
			break
		}
		i++
	}
	if len(root.children) == 0 {
		t.resetToAttachment(root)
		return root
	}
	if pos < 0 {
		pos = len(root.children)
	}
	a := t.NewAttachment()
	a.linkAt(root, pos)
	return a
}

// removeComplementary walks the chain of complementary nodes from the tree
// root down, dropping each node with its full children, and trims the full
// ends off the lowest one.
func (t *Tree) removeComplementary(c *Node) *Node {
	for c.cdChild != nil {
		next := c.cdChild
		next.unlinkFromParent()
		t.removeSubtree(c)
		c = next
	}
	for len(c.children) > 0 && c.children[0].isFull() {
		t.removeSubtree(c.children[0])
	}
	for len(c.children) > 1 && c.children[len(c.children)-1].isFull() {
		t.removeSubtree(c.children[len(c.children)-1])
	}
	a := t.NewAttachment()
	a.link(c)
	return a
}

func (t *Tree) resetToAttachment(n *Node) {
	n.kind = KindP
	n.edge = graph.NilEdge
	n.children = nil
}
