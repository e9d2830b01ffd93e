package graph

import (
	"errors"

	"github.com/emirpasic/gods/stacks/arraystack"
)

var (
	// ErrSameEndpoints is returned by [STNumbering] when s and t coincide.
	ErrSameEndpoints = errors.New("s and t must differ")

	// ErrDisconnected is returned when an algorithm needs a connected graph.
	ErrDisconnected = errors.New("graph is not connected")
)

// virtualST stands for the edge {s,t} when the graph does not contain it.
const virtualST EdgeID = -2

type dfsFrame struct {
	v   NodeID
	adj []EdgeID
	i   int
}

// STNumbering computes a bipolar orientation of g between s and t and returns
// the nodes in st-order: s first, t last, and every other node has at least one
// neighbor before it and one after it.
//
// The graph must satisfy that g + {s,t} is biconnected. This precondition is
// not verified beyond connectivity; use [IsBipolar] to validate a result.
// The implementation is the two-pass DFS of Even and Tarjan. The edge {s,t}
// is explored first, whether or not it is present in g.
func STNumbering(g *Graph, s, t NodeID) ([]NodeID, error) {
	if !g.validNode(s) || !g.validNode(t) {
		return nil, ErrUnknownNode
	}
	if s == t {
		return nil, ErrSameEndpoints
	}

	n := g.NumNodes()
	pre := make([]int, n)
	low := make([]int, n)
	parent := make([]NodeID, n)
	parentEdge := make([]EdgeID, n)
	preorder := make([]NodeID, 0, n)

	stEdge := virtualST
	for _, e := range g.Incident(s) {
		if g.Adjacent(e, s) == t {
			stEdge = e
			break
		}
	}
	adjS := make([]EdgeID, 0, g.Degree(s)+1)
	adjS = append(adjS, stEdge)
	for _, e := range g.Incident(s) {
		if e != stEdge {
			adjS = append(adjS, e)
		}
	}

	stack := arraystack.New()
	counter := 0
	visit := func(v NodeID, via EdgeID, from NodeID, adj []EdgeID) {
		counter++
		pre[v], low[v] = counter, counter
		parent[v], parentEdge[v] = from, via
		preorder = append(preorder, v)
		stack.Push(&dfsFrame{v: v, adj: adj})
	}
	visit(s, NilEdge, NilNode, adjS)

	for !stack.Empty() {
		top, _ := stack.Peek()
		f := top.(*dfsFrame)
		if f.i == len(f.adj) {
			stack.Pop()
			if p := parent[f.v]; p != NilNode && low[f.v] < low[p] {
				low[p] = low[f.v]
			}
			continue
		}
		e := f.adj[f.i]
		f.i++

		var w NodeID
		if e == virtualST {
			w = t
		} else {
			w = g.Adjacent(e, f.v)
		}
		if pre[w] == 0 {
			visit(w, e, f.v, g.Incident(w))
			continue
		}
		if e != parentEdge[f.v] && pre[w] < low[f.v] {
			low[f.v] = pre[w]
		}
	}
	if counter != n {
		return nil, ErrDisconnected
	}

	byPre := make([]NodeID, n+1)
	for _, v := range preorder {
		byPre[pre[v]] = v
	}

	// L is kept as a doubly linked list over node handles.
	prev := make([]NodeID, n)
	next := make([]NodeID, n)
	for i := range prev {
		prev[i], next[i] = NilNode, NilNode
	}
	head := s
	next[s], prev[t] = t, s
	plus := make([]bool, n)

	insertAfter := func(v, at NodeID) {
		nx := next[at]
		prev[v], next[v] = at, nx
		next[at] = v
		if nx != NilNode {
			prev[nx] = v
		}
	}
	insertBefore := func(v, at NodeID) {
		pv := prev[at]
		prev[v], next[v] = pv, at
		prev[at] = v
		if pv != NilNode {
			next[pv] = v
		} else {
			head = v
		}
	}

	for _, v := range preorder {
		if v == s || v == t {
			continue
		}
		vp := parent[v]
		if plus[byPre[low[v]]] {
			insertAfter(v, vp)
			plus[vp] = false
		} else {
			insertBefore(v, vp)
			plus[vp] = true
		}
	}

	order := make([]NodeID, 0, n)
	for v := head; v != NilNode; v = next[v] {
		order = append(order, v)
	}
	return order, nil
}

// IsBipolar reports whether order is a valid st-order of g: a permutation of
// all nodes where every node except the first and last has a neighbor on
// each side.
func IsBipolar(g *Graph, order []NodeID) bool {
	if len(order) != g.NumNodes() {
		return false
	}
	if len(order) < 2 {
		return true
	}
	rank := make([]int, g.NumNodes())
	for i := range rank {
		rank[i] = -1
	}
	for i, v := range order {
		if !g.validNode(v) || rank[v] >= 0 {
			return false
		}
		rank[v] = i
	}
	for i, v := range order {
		if i == 0 || i == len(order)-1 {
			continue
		}
		lower, higher := false, false
		for _, e := range g.Incident(v) {
			r := rank[g.Adjacent(e, v)]
			lower = lower || r < i
			higher = higher || r > i
		}
		if !lower || !higher {
			return false
		}
	}
	return true
}
