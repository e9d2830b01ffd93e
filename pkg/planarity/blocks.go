package planarity

import (
	"context"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
)

// blockOrder returns an st-order of the biconnected graph b between the
// endpoints of its first edge.
func blockOrder(b *graph.Graph) ([]graph.NodeID, error) {
	s, t := b.Ends(0)
	st, err := graph.STNumbering(b, s, t)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "st-numbering of a block")
	}
	return st, nil
}

// CheckGraph tests any graph, connected or not, by testing each of its
// biconnected blocks. The linear tree stops at the first non-planar block;
// the quadratic tree visits every block and reports all discarded edges.
// Node and Discarded of the verdict refer to g.
func CheckGraph(ctx context.Context, g *graph.Graph, opts Options) (Verdict, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return Verdict{}, err
	}
	v := Verdict{Planar: true, Algorithm: opts.Algorithm, Step: -1, Node: graph.NilNode}
	if n, m := g.NumNodes(), g.NumEdges(); n >= 3 && m > 3*n-6 && g.IsSimple() {
		opts.Logger.Debug("too many edges to be planar", "nodes", n, "edges", m)
		v.Planar = false
		if opts.Algorithm == AlgorithmBL {
			return v, nil
		}
	}

	for _, blk := range graph.Blocks(g) {
		sub, nodeOrig, edgeOrig := g.Induced(blk)
		st, err := blockOrder(sub)
		if err != nil {
			return v, err
		}
		bv, err := Check(ctx, sub, st, opts)
		v.Elapsed += bv.Elapsed
		if err != nil {
			return v, err
		}
		if bv.Planar {
			continue
		}
		if v.Node == graph.NilNode && bv.Node != graph.NilNode {
			v.Code, v.Step, v.Node = bv.Code, bv.Step, nodeOrig[bv.Node]
		}
		v.Planar = false
		for _, e := range bv.Discarded {
			v.Discarded = append(v.Discarded, edgeOrig[e])
		}
		if opts.Algorithm == AlgorithmBL {
			break
		}
	}
	return v, nil
}

// IsPlanarGraph reports whether g is planar. g may be disconnected and
// need not be biconnected.
func IsPlanarGraph(g *graph.Graph) (bool, error) {
	v, err := CheckGraph(context.Background(), g, Options{})
	return v.Planar, err
}

// Embed computes a planar embedding of any graph and stores it as the
// rotation system of g. Blocks are embedded one by one; around a cut
// vertex the rotations of its blocks follow each other. A non-planar graph
// is left untouched and reported as false.
func Embed(g *graph.Graph) (bool, error) {
	return EmbedWith(context.Background(), g, Options{})
}

// EmbedWith is [Embed] with options.
func EmbedWith(ctx context.Context, g *graph.Graph, opts Options) (bool, error) {
	opts.SetDefaults()
	rot := make([][]graph.EdgeID, g.NumNodes())
	for _, blk := range graph.Blocks(g) {
		sub, nodeOrig, edgeOrig := g.Induced(blk)
		st, err := blockOrder(sub)
		if err != nil {
			return false, err
		}
		ok, err := FindEmbeddingWith(ctx, sub, st, opts)
		if err != nil || !ok {
			return false, err
		}
		for i, n := range nodeOrig {
			for _, e := range sub.Incident(graph.NodeID(i)) {
				rot[n] = append(rot[n], edgeOrig[e])
			}
		}
	}
	for n, r := range rot {
		if len(r) == 0 {
			continue
		}
		if err := g.SetRotation(graph.NodeID(n), r); err != nil {
			return false, perrors.Wrap(perrors.ErrCodeInternal, err,
				"merging block rotations at node %d", g.Label(graph.NodeID(n)))
		}
	}
	return true, nil
}

// VerifyEmbedding checks that the rotation system stored in g is planar by
// tracing its faces and applying Euler's formula to every component.
func VerifyEmbedding(g *graph.Graph) error {
	if graph.EulerCheck(g) {
		return nil
	}
	return perrors.New(perrors.ErrCodeInvalidGraph,
		"rotation system is not planar: %d faces for %d nodes and %d edges",
		len(graph.Faces(g)), g.NumNodes(), g.NumEdges())
}
