package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planarity/pkg/cache"
	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	pio "github.com/matzehuels/planarity/pkg/io"
	"github.com/matzehuels/planarity/pkg/planarity"
	"github.com/matzehuels/planarity/pkg/planarize"
	"github.com/matzehuels/planarity/pkg/store"
)

// Runner executes pipeline operations with caching.
//
// The Runner keeps no per-request state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // nil disables reports
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default and a nil store disables reports.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		TTL:    DefaultTTL,
		Logger: logger,
	}
}

// Check tests g for planarity. With opts.ST set, the named pair drives a
// single sweep over g, which must then be biconnected once the edge {s,t}
// is added; otherwise every block is tested. The boolean reports a cache
// hit.
func (r *Runner) Check(ctx context.Context, g *graph.Graph, opts Options) (*CheckResult, bool, error) {
	if err := opts.ValidateAndSetDefaults(g); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sum := summarize(g)
	key := r.Keyer.ResultKey(cache.OpCheck, sum.GraphHash, cache.ResultKeyOpts{
		Algorithm: opts.Algorithm,
		ST:        opts.ST,
	})
	res := &CheckResult{}
	hit := r.lookup(ctx, key, opts, res)
	if !hit {
		v, err := r.check(ctx, g, opts)
		if err != nil {
			return nil, false, err
		}
		res = &CheckResult{Summary: sum, Verdict: v}
		if v.Node != graph.NilNode {
			l := g.Label(v.Node)
			res.FailedAt = &l
		}
		for _, e := range v.Discarded {
			a, b := g.Ends(e)
			res.DiscardedEnds = append(res.DiscardedEnds, [2]int64{g.Label(a), g.Label(b)})
		}
		r.save(ctx, key, res)
	}

	id, err := r.record(ctx, store.KindCheck, opts.Algorithm, res.Verdict.Planar, res)
	if err != nil {
		return nil, false, err
	}
	res.ReportID = id
	return res, hit, nil
}

func (r *Runner) check(ctx context.Context, g *graph.Graph, opts Options) (planarity.Verdict, error) {
	if len(opts.ST) == 0 {
		return planarity.CheckGraph(ctx, g, opts.planarity())
	}
	order, err := stOrder(g, opts.ST[0], opts.ST[1])
	if err != nil {
		return planarity.Verdict{}, err
	}
	return planarity.Check(ctx, g, order, opts.planarity())
}

// Embed computes a planar embedding of a copy of g. A non-planar graph is
// a result with Planar false, not an error.
func (r *Runner) Embed(ctx context.Context, g *graph.Graph, opts Options) (*EmbedResult, bool, error) {
	if err := opts.ValidateAndSetDefaults(g); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sum := summarize(g)
	key := r.Keyer.ResultKey(cache.OpEmbed, sum.GraphHash, cache.ResultKeyOpts{})
	res := &EmbedResult{}
	hit := r.lookup(ctx, key, opts, res)
	if !hit {
		work := g.Clone()
		planar, err := planarity.EmbedWith(ctx, work, opts.planarity())
		if err != nil {
			return nil, false, err
		}
		res = &EmbedResult{Summary: sum, Planar: planar}
		if planar {
			if err := planarity.VerifyEmbedding(work); err != nil {
				return nil, false, perrors.Wrap(perrors.ErrCodeInternal, err, "embedding failed verification")
			}
			if res.Graph, err = encodeGraph(work); err != nil {
				return nil, false, err
			}
		}
		r.save(ctx, key, res)
	}

	id, err := r.record(ctx, store.KindEmbed, "", res.Planar, res)
	if err != nil {
		return nil, false, err
	}
	res.ReportID = id
	return res, hit, nil
}

// Planarize planarizes g. The removed marks of g's edges are left as
// [planarize.Planarize] sets them.
func (r *Runner) Planarize(ctx context.Context, g *graph.Graph, opts Options) (*PlanarizeResult, bool, error) {
	if err := opts.ValidateAndSetDefaults(g); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sum := summarize(g)
	key := r.Keyer.ResultKey(cache.OpPlanarize, sum.GraphHash, cache.ResultKeyOpts{
		VirtualStart: opts.VirtualStart,
	})
	res := &PlanarizeResult{}
	hit := r.lookup(ctx, key, opts, res)
	if !hit {
		p, err := planarize.Planarize(ctx, g, opts.planarize())
		if err != nil {
			return nil, false, err
		}
		var out bytes.Buffer
		if err := pio.WritePlanarized(&out, p, opts.VirtualStart); err != nil {
			return nil, false, err
		}
		res = &PlanarizeResult{
			Summary:   sum,
			Crossings: p.Crossings(),
			Removed:   p.Removed,
			Output:    out.String(),
		}
		if res.Removed == nil {
			res.Removed = []graph.EdgeID{}
		}
		if res.Graph, err = encodeGraph(p.Graph); err != nil {
			return nil, false, err
		}
		r.save(ctx, key, res)
	}

	id, err := r.record(ctx, store.KindPlanarize, "", res.Crossings == 0, res)
	if err != nil {
		return nil, false, err
	}
	res.ReportID = id
	return res, hit, nil
}

// Close releases the cache and the store.
func (r *Runner) Close(ctx context.Context) error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(ctx); err == nil {
			err = serr
		}
	}
	return err
}

// lookup decodes a cached result into dst. Undecodable entries count as
// misses and are recomputed.
func (r *Runner) lookup(ctx context.Context, key string, opts Options, dst any) bool {
	if opts.Refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "key", key, "err", err)
		return false
	}
	if !hit {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.Logger.Debug("dropping undecodable cache entry", "key", key, "err", err)
		return false
	}
	r.Logger.Debug("cache hit", "key", key)
	return true
}

func (r *Runner) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache store failed", "key", key, "err", err)
	}
}

// record saves res as a report when a store is configured and returns the
// report id.
func (r *Runner) record(ctx context.Context, kind, algorithm string, planar bool, res interface{ summary() *Summary }) (string, error) {
	if r.Store == nil {
		return "", nil
	}
	sum := res.summary()
	sum.ReportID = ""
	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	rep := &store.Report{
		Kind:      kind,
		GraphHash: sum.GraphHash,
		Algorithm: algorithm,
		Nodes:     sum.Nodes,
		Edges:     sum.Edges,
		Planar:    planar,
		Result:    data,
	}
	if err := r.Store.Save(ctx, rep); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	r.Logger.Debug("report saved", "id", rep.ID, "kind", kind)
	return rep.ID, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (s *Summary) summary() *Summary { return s }

func summarize(g *graph.Graph) Summary {
	return Summary{GraphHash: cache.GraphHash(g), Nodes: g.NumNodes(), Edges: g.NumEdges()}
}

// stOrder st-numbers g for the source and sink labeled s and t.
func stOrder(g *graph.Graph, s, t int64) ([]graph.NodeID, error) {
	src, ok := g.NodeByLabel(s)
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "unknown source node %d", s)
	}
	dst, ok := g.NodeByLabel(t)
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "unknown sink node %d", t)
	}
	order, err := graph.STNumbering(g, src, dst)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "st-numbering from %d to %d", s, t)
	}
	if !graph.IsBipolar(g, order) {
		return nil, perrors.New(perrors.ErrCodeNotBiconnected,
			"graph plus edge {%d,%d} is not biconnected", s, t)
	}
	return order, nil
}

func encodeGraph(g *graph.Graph) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := pio.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// Embedding decodes the embedded graph, or returns nil for a non-planar
// input.
func (r *EmbedResult) Embedding() (*graph.Graph, error) {
	if len(r.Graph) == 0 {
		return nil, nil
	}
	return pio.ReadJSON(bytes.NewReader(r.Graph))
}

// Planarized decodes the planarized graph.
func (r *PlanarizeResult) Planarized() (*graph.Graph, error) {
	return pio.ReadJSON(bytes.NewReader(r.Graph))
}
