package planarity

import (
	"context"
	"errors"
	"slices"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/pqtree/bl"
)

// sweepError reports the reduction that stopped a sweep.
type sweepError struct {
	step int
	node graph.NodeID
	err  error
}

func (e *sweepError) Error() string { return e.err.Error() }
func (e *sweepError) Unwrap() error { return e.err }

// failureCode maps a reduction failure of the linear tree to its code.
// ok is false for errors that do not mean non-planarity.
func failureCode(err error) (code perrors.Code, ok bool) {
	switch {
	case errors.Is(err, bl.ErrBubbleUp):
		return perrors.ErrCodeBubbleUp, true
	case errors.Is(err, bl.ErrTemplateMatch):
		return perrors.ErrCodeTemplateMatch, true
	}
	return "", false
}

// blPass is one sweep of the linear tree along an order of the nodes. At
// every node but the first the edges of reduce are made consecutive; at
// every node but the last the edges of fan are hung below the attachment
// left by the reduction, as a Q-node in their given order when ordered is
// set.
type blPass struct {
	tree    *bl.Tree
	reduce  [][]graph.EdgeID
	fan     [][]graph.EdgeID
	ordered bool

	// record, when set, receives the frontier order of every reduction.
	record [][]graph.EdgeID
}

// run drives the pass and returns the last attachment node.
func (p *blPass) run(ctx context.Context, order []graph.NodeID, opts *Options) (*bl.Node, error) {
	a := p.tree.NewAttachment()
	for i, v := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			r, err := p.tree.Reduce(p.reduce[v])
			if err != nil {
				return nil, &sweepError{step: i, node: v, err: err}
			}
			opts.Hooks.OnReduction(ctx, string(AlgorithmBL), r.Leaves, 0)
			if p.record != nil {
				p.record[v] = p.tree.Collect(r, v)
			}
			a = p.tree.Remove(r)
		}
		if i < len(order)-1 {
			if p.ordered {
				p.tree.FanOutOrdered(a, p.fan[v], v)
			} else {
				p.tree.FanOut(a, p.fan[v])
			}
		}
	}
	return a, nil
}

// testLinear runs the single forward sweep of the planarity test.
func testLinear(ctx context.Context, b *bipolar, opts *Options) error {
	if len(b.order) <= 3 {
		return nil
	}
	p := &blPass{
		tree:   bl.New(b.g.NumEdges()),
		reduce: b.in,
		fan:    b.out,
	}
	_, err := p.run(ctx, b.order, opts)
	return err
}

// embedLinear runs both sweeps of the embedding algorithm and returns the
// rotation of every node, indexed by NodeID.
func embedLinear(ctx context.Context, b *bipolar, opts *Options) ([][]graph.EdgeID, error) {
	n := len(b.order)
	if n <= 3 && b.g.IsSimple() {
		rot := make([][]graph.EdgeID, n)
		for _, v := range b.order {
			rot[v] = slices.Clone(b.g.Incident(v))
		}
		return rot, nil
	}

	incoming := make([][]graph.EdgeID, n)
	first := &blPass{
		tree:   bl.New(b.g.NumEdges(), bl.CollectEdges()),
		reduce: b.in,
		fan:    b.out,
		record: incoming,
	}
	if _, err := first.run(ctx, b.order, opts); err != nil {
		return nil, err
	}
	opts.Logger.Debug("forward sweep collected incoming orders", "nodes", n)

	outgoing := make([][]graph.EdgeID, n)
	second := &blPass{
		tree:    bl.New(b.g.NumEdges(), bl.TrackFlips()),
		reduce:  b.out,
		fan:     incoming,
		ordered: true,
		record:  outgoing,
	}
	anchor, err := second.run(ctx, b.reversed(), opts)
	if err != nil {
		return nil, err
	}
	flips := second.tree.Flips(anchor)
	opts.Logger.Debug("backward sweep collected outgoing orders",
		"in_reversed", len(flips.InReversed), "out_reversed", len(flips.OutReversed))

	rot := make([][]graph.EdgeID, n)
	for _, v := range b.order {
		in := slices.Clone(incoming[v])
		if flips.InReversed[v] {
			slices.Reverse(in)
		}
		out := slices.Clone(outgoing[v])
		if !flips.OutReversed[v] {
			slices.Reverse(out)
		}
		rot[v] = append(in, out...)
	}
	return rot, nil
}

// FindEmbedding tests the biconnected graph g under the st-order st and,
// if it is planar, rewrites the rotation of every node of g to a planar
// embedding. A non-planar graph is left untouched.
func FindEmbedding(g *graph.Graph, st []graph.NodeID) (bool, error) {
	return FindEmbeddingWith(context.Background(), g, st, Options{})
}

// FindEmbeddingWith is [FindEmbedding] with options. The algorithm option
// is ignored: only the linear tree can embed.
func FindEmbeddingWith(ctx context.Context, g *graph.Graph, st []graph.NodeID, opts Options) (bool, error) {
	opts.SetDefaults()
	b, err := orient(g, st)
	if err != nil {
		return false, err
	}

	v, rot, err := runSweep(ctx, b, AlgorithmBL, &opts,
		func(ctx context.Context, b *bipolar, o *Options, _ *Verdict) ([][]graph.EdgeID, error) {
			return embedLinear(ctx, b, o)
		})
	if err != nil || !v.Planar {
		return false, err
	}
	for _, n := range st {
		if err := g.SetRotation(n, rot[n]); err != nil {
			return false, perrors.Wrap(perrors.ErrCodeInternal, err,
				"embedding of node %d", g.Label(n))
		}
	}
	return true, nil
}
