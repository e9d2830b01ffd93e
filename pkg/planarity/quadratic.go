package planarity

import (
	"context"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/pqtree/jts"
)

// sweepQuadratic runs the quadratic tree along the st-order and returns
// the edges it had to discard. The first reduction that discarded anything
// is recorded in v.
func sweepQuadratic(ctx context.Context, b *bipolar, opts *Options, v *Verdict) ([]graph.EdgeID, error) {
	if len(b.order) <= 4 {
		return nil, nil
	}
	t := jts.New(b.g.NumEdges())
	a := t.NewAttachment()
	var removed []graph.EdgeID
	for i, n := range b.order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			var live []graph.EdgeID
			for _, e := range b.in[n] {
				if !t.Discarded(e) {
					live = append(live, e)
				}
			}
			if len(live) == 0 {
				return nil, &sweepError{step: i, node: n, err: jts.ErrNoLeaves}
			}
			r, err := t.Reduce(live)
			if err != nil {
				return nil, &sweepError{step: i, node: n, err: err}
			}
			opts.Hooks.OnReduction(ctx, string(AlgorithmJTS), len(live), len(r.Discarded))
			if len(r.Discarded) > 0 {
				if v.Planar {
					v.Planar, v.Step, v.Node = false, i, n
				}
				removed = append(removed, r.Discarded...)
				opts.Logger.Debug("reduction discarded leaves",
					"step", i, "node", b.g.Label(n), "discarded", len(r.Discarded))
			}
			a = t.Remove(r)
		}
		if i < len(b.order)-1 {
			t.FanOut(a, b.out[n])
		}
	}
	v.Discarded = removed
	return removed, nil
}

// NonPlanarEdges runs the quadratic tree over the biconnected graph g
// along the st-order st and returns the edges it removed to keep every
// reduction feasible. The remaining edges form a planar subgraph; the
// result is empty iff g is planar. Graphs with at most four nodes are
// planar and need no sweep.
func NonPlanarEdges(g *graph.Graph, st []graph.NodeID) ([]graph.EdgeID, error) {
	return NonPlanarEdgesWith(context.Background(), g, st, Options{})
}

// NonPlanarEdgesWith is [NonPlanarEdges] with options. The algorithm
// option is ignored.
func NonPlanarEdgesWith(ctx context.Context, g *graph.Graph, st []graph.NodeID, opts Options) ([]graph.EdgeID, error) {
	opts.SetDefaults()
	b, err := orient(g, st)
	if err != nil {
		return nil, err
	}
	_, removed, err := runSweep(ctx, b, AlgorithmJTS, &opts, sweepQuadratic)
	return removed, err
}

// IsPlanarJTS reports whether g is planar using the quadratic tree: it is
// iff the tree discards no edge.
func IsPlanarJTS(g *graph.Graph, st []graph.NodeID) (bool, error) {
	v, err := Check(context.Background(), g, st, Options{Algorithm: AlgorithmJTS})
	return v.Planar, err
}
