// Package experiment cross-checks the two planarity testers over many
// st-orientations of one graph.
//
// For every chosen (s, t) pair the graph is st-numbered, tested with the
// linear and the quadratic tree and, when planar, embedded and verified.
// The testers must agree and every embedding must pass the Euler check;
// anything else aborts the run.
package experiment

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/planarity"
)

// ExhaustiveLimit is the largest node count for which every ordered pair is
// tried.
const ExhaustiveLimit = 32

// Options configures [Run].
type Options struct {
	// Workers bounds the pairs tested at once. Zero means GOMAXPROCS.
	Workers int
	// MaxPairs overrides the sample size for graphs above ExhaustiveLimit.
	// Zero picks 1000, or 100 above 10000 nodes.
	MaxPairs int
	// Seed makes the sample reproducible.
	Seed uint64
	// Progress, when set, is called after every pair with the number done
	// and the total. It may be called from several goroutines.
	Progress func(done, total int)
	Logger   *log.Logger
}

// Result summarizes a run.
type Result struct {
	Nodes     int           `json:"nodes"`
	Edges     int           `json:"edges"`
	Attempts  int           `json:"attempts"`
	NonPlanar int           `json:"non_planar"`
	Elapsed   time.Duration `json:"elapsed"`
}

// String formats r as the tab-separated line "|N| |E| attempts non-planar".
func (r Result) String() string {
	return fmt.Sprintf("%d\t%d\t%d\t%d", r.Nodes, r.Edges, r.Attempts, r.NonPlanar)
}

// Pair is one st-orientation request.
type Pair struct{ S, T graph.NodeID }

// Pairs returns the pairs a run on g tries: every ordered pair of distinct
// nodes up to ExhaustiveLimit nodes, otherwise a random sample.
func Pairs(g *graph.Graph, maxPairs int, seed uint64) []Pair {
	n := g.NumNodes()
	if n < 2 {
		return nil
	}
	if n <= ExhaustiveLimit {
		out := make([]Pair, 0, n*(n-1))
		for s := range n {
			for t := range n {
				if s != t {
					out = append(out, Pair{graph.NodeID(s), graph.NodeID(t)})
				}
			}
		}
		return out
	}
	k := maxPairs
	if k <= 0 {
		k = 1000
		if n > 10000 {
			k = 100
		}
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Pair, k)
	for i := range out {
		s, t := 0, 0
		for s == t {
			s, t = rng.IntN(n), rng.IntN(n)
		}
		out[i] = Pair{graph.NodeID(s), graph.NodeID(t)}
	}
	return out
}

// Run tests g under every pair [Pairs] picks. g is only read.
func Run(ctx context.Context, g *graph.Graph, opts Options) (Result, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pairs := Pairs(g, opts.MaxPairs, opts.Seed)
	res := Result{Nodes: g.NumNodes(), Edges: g.NumEdges(), Attempts: len(pairs)}
	opts.Logger.Debug("experiment started", "nodes", res.Nodes, "edges", res.Edges,
		"pairs", len(pairs), "workers", workers)

	start := time.Now()
	var nonPlanar, done atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, p := range pairs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			planar, err := tryPair(egCtx, g, p)
			if err != nil {
				return err
			}
			if !planar {
				nonPlanar.Add(1)
			}
			if d := done.Add(1); opts.Progress != nil {
				opts.Progress(int(d), len(pairs))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	res.NonPlanar = int(nonPlanar.Load())
	res.Elapsed = time.Since(start)
	opts.Logger.Info("experiment finished", "attempts", res.Attempts,
		"non_planar", res.NonPlanar, "elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// tryPair runs both testers under the orientation of p and embeds g when
// they call it planar. Each call builds its own trees.
func tryPair(ctx context.Context, g *graph.Graph, p Pair) (bool, error) {
	st, err := graph.STNumbering(g, p.S, p.T)
	if err != nil {
		return false, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "st-numbering %d,%d", g.Label(p.S), g.Label(p.T))
	}
	if !graph.IsBipolar(g, st) {
		return false, perrors.New(perrors.ErrCodeNotBiconnected,
			"no st-orientation for s=%d t=%d; the graph is not biconnected", g.Label(p.S), g.Label(p.T))
	}
	v, err := planarity.Check(ctx, g, st, planarity.Options{Algorithm: planarity.AlgorithmBL})
	if err != nil {
		return false, err
	}
	q, err := planarity.Check(ctx, g, st, planarity.Options{Algorithm: planarity.AlgorithmJTS})
	if err != nil {
		return false, err
	}
	if v.Planar != q.Planar {
		return false, perrors.New(perrors.ErrCodeInternal,
			"testers disagree for s=%d t=%d: linear %t at step %d, quadratic %t at step %d",
			g.Label(p.S), g.Label(p.T), v.Planar, v.Step, q.Planar, q.Step)
	}
	if !v.Planar {
		return false, nil
	}

	h := g.Clone()
	ok, err := planarity.FindEmbeddingWith(ctx, h, st, planarity.Options{})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, perrors.New(perrors.ErrCodeInternal, "embedding failed for s=%d t=%d", g.Label(p.S), g.Label(p.T))
	}
	if err := planarity.VerifyEmbedding(h); err != nil {
		return false, perrors.Wrap(perrors.ErrCodeInternal, err, "embedding for s=%d t=%d", g.Label(p.S), g.Label(p.T))
	}
	return true, nil
}
