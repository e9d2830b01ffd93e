package planarity

import (
	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
)

// bipolar is a graph oriented by an st-order: every edge points from its
// endpoint with the lower rank to the one with the higher rank.
type bipolar struct {
	g     *graph.Graph
	order []graph.NodeID
	rank  []int
	in    [][]graph.EdgeID
	out   [][]graph.EdgeID
}

// orient splits the incidence lists of g by st rank. st must list every
// node exactly once; whether it is a valid bipolar orientation is not
// checked.
func orient(g *graph.Graph, st []graph.NodeID) (*bipolar, error) {
	n := g.NumNodes()
	if len(st) != n {
		return nil, perrors.New(perrors.ErrCodeInvalidInput,
			"st-order lists %d nodes, graph has %d", len(st), n)
	}
	b := &bipolar{
		g:     g,
		order: st,
		rank:  make([]int, n),
		in:    make([][]graph.EdgeID, n),
		out:   make([][]graph.EdgeID, n),
	}
	for i := range b.rank {
		b.rank[i] = -1
	}
	for i, v := range st {
		if int(v) < 0 || int(v) >= n || b.rank[v] >= 0 {
			return nil, perrors.New(perrors.ErrCodeInvalidInput,
				"st-order is not a permutation of the nodes (position %d)", i)
		}
		b.rank[v] = i
	}
	for _, v := range st {
		for _, e := range g.Incident(v) {
			if b.rank[g.Adjacent(e, v)] > b.rank[v] {
				b.out[v] = append(b.out[v], e)
			} else {
				b.in[v] = append(b.in[v], e)
			}
		}
	}
	return b, nil
}

// reversed returns the st-order from sink to source.
func (b *bipolar) reversed() []graph.NodeID {
	r := make([]graph.NodeID, len(b.order))
	for i, v := range b.order {
		r[len(r)-1-i] = v
	}
	return r
}
