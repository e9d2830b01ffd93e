package planarize

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/observability"
	"github.com/matzehuels/planarity/pkg/planarity"
)

// Options configures planarization.
type Options struct {
	// VirtualStart is the label of the first virtual node. Labels already
	// in use are skipped; 0 starts right above the largest node label.
	VirtualStart int64 `json:"virtual_start,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger                  `json:"-"`
	Hooks  observability.ReductionHooks `json:"-"`
}

// SetDefaults fills in a discarding logger and the global reduction hooks.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Hooks == nil {
		o.Hooks = observability.Reduction()
	}
}

func (o *Options) planarity(algo planarity.Algorithm) planarity.Options {
	return planarity.Options{Algorithm: algo, Logger: o.Logger, Hooks: o.Hooks}
}

// Subgraph is a spanning planar subgraph of Source.
//
// Graph shares the node handles of Source. Its edges are labeled with the
// Source edges they stand for, and Orig maps them back as well. The edges
// of Source that are not in Graph are listed in Removed and carry the
// removed mark of Source ([graph.Graph.IsRemoved]).
type Subgraph struct {
	Source  *graph.Graph
	Graph   *graph.Graph
	Orig    []graph.EdgeID
	Removed []graph.EdgeID
}

// newSubgraph builds the subgraph of g without the edges in removed.
func newSubgraph(g *graph.Graph, removed []graph.EdgeID) *Subgraph {
	for _, e := range g.Edges() {
		g.SetRemoved(e, false)
	}
	for _, e := range removed {
		g.SetRemoved(e, true)
	}
	sub, orig := g.Subgraph(func(e graph.EdgeID) bool { return !g.IsRemoved(e) })
	for i, o := range orig {
		sub.SetEdgeLabel(graph.EdgeID(i), int64(o))
	}
	return &Subgraph{Source: g, Graph: sub, Orig: orig, Removed: removed}
}

// PlanarSubgraph runs the quadratic tree over the biconnected graph g along
// the st-order st and returns the planar subgraph it leaves. Graphs with at
// most four nodes come back whole.
func PlanarSubgraph(ctx context.Context, g *graph.Graph, st []graph.NodeID, opts Options) (*Subgraph, error) {
	opts.SetDefaults()
	removed, err := planarity.NonPlanarEdgesWith(ctx, g, st, opts.planarity(planarity.AlgorithmJTS))
	if err != nil {
		return nil, err
	}
	return newSubgraph(g, removed), nil
}

// planarSubgraphOfBlocks is PlanarSubgraph for any graph, block by block.
func planarSubgraphOfBlocks(ctx context.Context, g *graph.Graph, opts Options) (*Subgraph, error) {
	v, err := planarity.CheckGraph(ctx, g, opts.planarity(planarity.AlgorithmJTS))
	if err != nil {
		return nil, err
	}
	return newSubgraph(g, v.Discarded), nil
}

// Maximalize offers every removed edge back to s in order and keeps those
// that leave it planar. Afterwards no removed edge can be added alone.
func Maximalize(ctx context.Context, s *Subgraph, opts Options) error {
	opts.SetDefaults()
	if s.Graph.NumNodes() <= 4 || len(s.Removed) == 0 {
		return nil
	}
	popts := opts.planarity(planarity.AlgorithmBL)
	var still []graph.EdgeID
	for _, e := range s.Removed {
		a, b := s.Source.Ends(e)
		trial := s.Graph.Clone()
		id, err := trial.AddEdge(a, b)
		if err != nil {
			return err
		}
		trial.SetEdgeLabel(id, int64(e))

		v, err := planarity.CheckGraph(ctx, trial, popts)
		if err != nil {
			return err
		}
		if !v.Planar {
			still = append(still, e)
			continue
		}
		s.Graph = trial
		s.Orig = append(s.Orig, e)
		s.Source.SetRemoved(e, false)
		opts.Logger.Debug("edge restored", "edge", e,
			"from", s.Source.Label(a), "to", s.Source.Label(b))
	}
	s.Removed = still
	return nil
}
