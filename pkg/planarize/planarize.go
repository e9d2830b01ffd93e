package planarize

import (
	"context"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Planarize computes a planar subgraph of g block by block, makes it
// maximal and reinserts the remaining edges with crossings. g itself is
// only touched through the removed marks of its edges.
func Planarize(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	opts.SetDefaults()
	opts.Logger.Debug("planarizing", "nodes", g.NumNodes(), "edges", g.NumEdges())

	s, err := planarSubgraphOfBlocks(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("planar subgraph", "kept", s.Graph.NumEdges(), "removed", len(s.Removed))

	if err := Maximalize(ctx, s, opts); err != nil {
		return nil, err
	}
	opts.Logger.Debug("maximal planar subgraph", "kept", s.Graph.NumEdges(), "removed", len(s.Removed))

	res, err := Reinsert(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("planarized", "nodes", res.Graph.NumNodes(),
		"edges", res.Graph.NumEdges(), "crossings", res.Crossings())
	return res, nil
}
