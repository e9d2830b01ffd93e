package planarity

import (
	"context"
	"errors"
	"time"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/pqtree/bl"
	"github.com/matzehuels/planarity/pkg/pqtree/jts"
)

// Verdict is the outcome of one sweep.
type Verdict struct {
	Planar    bool      `json:"planar"`
	Algorithm Algorithm `json:"algorithm"`

	// Code tells why the linear tree gave up: BUBBLE_UP_FAILURE or
	// TEMPLATE_MATCH_FAILURE. The quadratic tree never gives up and leaves
	// it empty.
	Code perrors.Code `json:"code,omitempty"`

	// Step is the st index of the node whose reduction failed or first
	// discarded leaves, and Node that node. They are -1 and NilNode for a
	// planar graph.
	Step int          `json:"step"`
	Node graph.NodeID `json:"node"`

	// Discarded lists the edges the quadratic tree removed.
	Discarded []graph.EdgeID `json:"discarded,omitempty"`

	Elapsed time.Duration `json:"elapsed"`
}

// runSweep wraps the sweep fn with hooks and logging, and turns reduction
// failures of the linear tree into a verdict. fn may mark v as non-planar
// itself.
func runSweep[T any](ctx context.Context, b *bipolar, algo Algorithm, opts *Options,
	fn func(context.Context, *bipolar, *Options, *Verdict) (T, error)) (Verdict, T, error) {
	v := Verdict{Planar: true, Algorithm: algo, Step: -1, Node: graph.NilNode}
	opts.Hooks.OnSweepStart(ctx, string(algo), b.g.NumNodes(), b.g.NumEdges())
	opts.Logger.Debug("sweep started", "algorithm", algo,
		"nodes", b.g.NumNodes(), "edges", b.g.NumEdges())

	start := time.Now()
	res, err := fn(ctx, b, opts, &v)
	v.Elapsed = time.Since(start)
	err = v.absorb(b, err)
	opts.Hooks.OnSweepComplete(ctx, string(algo), v.Planar, v.Elapsed, err)
	if err != nil {
		var zero T
		return v, zero, err
	}
	opts.Logger.Debug("sweep finished", "algorithm", algo, "planar", v.Planar,
		"step", v.Step, "elapsed", v.Elapsed)
	return v, res, nil
}

// absorb records a reduction failure of the linear tree in v and returns
// what remains a real error.
func (v *Verdict) absorb(b *bipolar, err error) error {
	if err == nil {
		return nil
	}
	var se *sweepError
	if !errors.As(err, &se) {
		return err
	}
	if code, ok := failureCode(se.err); ok {
		v.Planar, v.Code, v.Step, v.Node = false, code, se.step, se.node
		return nil
	}
	label := b.g.Label(se.node)
	switch {
	case errors.Is(se.err, bl.ErrNoLeaves), errors.Is(se.err, bl.ErrUnknownLeaf),
		errors.Is(se.err, jts.ErrNoLeaves), errors.Is(se.err, jts.ErrUnknownLeaf):
		return perrors.Wrap(perrors.ErrCodeInvalidInput, se.err,
			"st-order is not bipolar at node %d (step %d)", label, se.step)
	}
	return perrors.Wrap(perrors.ErrCodeInternal, se.err,
		"reduction at node %d (step %d)", label, se.step)
}

// Check runs one sweep of the selected tree over the biconnected graph g
// along the st-order st. Non-planarity is reported in the verdict; an error
// means the input was unusable or the context ended.
func Check(ctx context.Context, g *graph.Graph, st []graph.NodeID, opts Options) (Verdict, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return Verdict{}, err
	}
	b, err := orient(g, st)
	if err != nil {
		return Verdict{}, err
	}
	if opts.Algorithm == AlgorithmJTS {
		v, _, err := runSweep(ctx, b, AlgorithmJTS, &opts, sweepQuadratic)
		return v, err
	}
	v, _, err := runSweep(ctx, b, AlgorithmBL, &opts,
		func(ctx context.Context, b *bipolar, o *Options, _ *Verdict) (struct{}, error) {
			return struct{}{}, testLinear(ctx, b, o)
		})
	return v, err
}

// IsPlanar reports whether the biconnected graph g is planar, using the
// linear tree along the st-order st. Graphs with at most three nodes are
// planar without a sweep.
//
// st must be a bipolar orientation of g; a violation is detected only when
// it starves a reduction of leaves.
func IsPlanar(g *graph.Graph, st []graph.NodeID) (bool, error) {
	v, err := Check(context.Background(), g, st, Options{Algorithm: AlgorithmBL})
	return v.Planar, err
}
