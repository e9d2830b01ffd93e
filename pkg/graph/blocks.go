package graph

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Blocks returns the biconnected components of g, each as the list of its
// edges. Isolated nodes belong to no block. A bridge forms a block of its own.
func Blocks(g *Graph) [][]EdgeID {
	n := g.NumNodes()
	pre := make([]int, n)
	low := make([]int, n)
	parent := make([]NodeID, n)
	parentEdge := make([]EdgeID, n)
	counter := 0

	var blocks [][]EdgeID
	edges := arraystack.New()
	stack := arraystack.New()

	for r := range n {
		if pre[r] != 0 || g.Degree(NodeID(r)) == 0 {
			continue
		}
		counter++
		pre[r], low[r] = counter, counter
		parent[r], parentEdge[r] = NilNode, NilEdge
		stack.Push(&dfsFrame{v: NodeID(r), adj: g.Incident(NodeID(r))})

		for !stack.Empty() {
			top, _ := stack.Peek()
			f := top.(*dfsFrame)
			v := f.v
			if f.i == len(f.adj) {
				stack.Pop()
				p := parent[v]
				if p == NilNode {
					continue
				}
				if low[v] < low[p] {
					low[p] = low[v]
				}
				if low[v] >= pre[p] {
					var block []EdgeID
					for {
						x, _ := edges.Pop()
						e := x.(EdgeID)
						block = append(block, e)
						if e == parentEdge[v] {
							break
						}
					}
					blocks = append(blocks, block)
				}
				continue
			}
			e := f.adj[f.i]
			f.i++
			if e == parentEdge[v] {
				continue
			}
			w := g.Adjacent(e, v)
			switch {
			case pre[w] == 0:
				edges.Push(e)
				counter++
				pre[w], low[w] = counter, counter
				parent[w], parentEdge[w] = v, e
				stack.Push(&dfsFrame{v: w, adj: g.Incident(w)})
			case pre[w] < pre[v]:
				edges.Push(e)
				if pre[w] < low[v] {
					low[v] = pre[w]
				}
			}
		}
	}
	return blocks
}

// Components returns the connected components of g as node lists.
func Components(g *Graph) [][]NodeID {
	n := g.NumNodes()
	seen := make([]bool, n)
	var comps [][]NodeID
	q := linkedlistqueue.New()
	for r := range n {
		if seen[r] {
			continue
		}
		seen[r] = true
		q.Enqueue(NodeID(r))
		var comp []NodeID
		for !q.Empty() {
			x, _ := q.Dequeue()
			v := x.(NodeID)
			comp = append(comp, v)
			for _, e := range g.Incident(v) {
				if w := g.Adjacent(e, v); !seen[w] {
					seen[w] = true
					q.Enqueue(w)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// IsConnected reports whether g has at most one connected component.
func IsConnected(g *Graph) bool {
	return len(Components(g)) <= 1
}

// IsBiconnected reports whether g is connected and has no cut vertex.
func IsBiconnected(g *Graph) bool {
	if g.NumNodes() <= 1 {
		return true
	}
	return IsConnected(g) && len(Blocks(g)) == 1
}
