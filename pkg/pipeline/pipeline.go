// Package pipeline runs the planarity operations behind the CLI and the HTTP
// API: it validates options, looks results up in a cache, computes what is
// missing and optionally saves a report for every request.
//
// By centralizing this logic, the command line and the server answer the
// same graph with the same bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	res, cached, err := runner.Check(ctx, g, pipeline.Options{Algorithm: "jts"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Verdict.Planar, cached)
//
// Results are cached under a key derived from [cache.GraphHash] and the
// options that change the answer, so the rotation system of an input does
// not matter.
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/observability"
	"github.com/matzehuels/planarity/pkg/planarity"
	"github.com/matzehuels/planarity/pkg/planarize"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultLimits bound the graphs the HTTP API accepts.
var DefaultLimits = perrors.Limits{MaxNodes: 100_000, MaxEdges: 300_000}

// DefaultTTL is how long results stay cached when Runner.TTL is zero.
const DefaultTTL = 7 * 24 * time.Hour

// =============================================================================
// Options
// =============================================================================

// Options controls one pipeline operation.
type Options struct {
	// Algorithm is "bl" or "jts". Only Check uses it.
	Algorithm string `json:"algorithm,omitempty"`

	// ST names source and sink by node label. Empty means the whole graph
	// is tested block by block. Only Check uses it.
	ST []int64 `json:"st,omitempty"`

	// VirtualStart is the first virtual node number for Planarize.
	VirtualStart int64 `json:"virtual_start,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"-"`

	// Limits rejects oversized graphs. The zero value accepts any size.
	Limits perrors.Limits `json:"-"`

	Logger *log.Logger                  `json:"-"`
	Hooks  observability.ReductionHooks `json:"-"`
}

// ValidateAndSetDefaults checks opts against g and normalizes the
// algorithm name.
func (o *Options) ValidateAndSetDefaults(g *graph.Graph) error {
	algo, err := planarity.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	o.Algorithm = string(algo)
	if len(o.ST) != 0 && len(o.ST) != 2 {
		return perrors.New(perrors.ErrCodeInvalidInput, "st needs exactly two node labels, got %d", len(o.ST))
	}
	if len(o.ST) == 2 && o.ST[0] == o.ST[1] {
		return perrors.New(perrors.ErrCodeInvalidInput, "source and sink are both %d", o.ST[0])
	}
	return perrors.ValidateGraphSize(g.NumNodes(), g.NumEdges(), o.Limits)
}

func (o *Options) planarity() planarity.Options {
	return planarity.Options{Algorithm: planarity.Algorithm(o.Algorithm), Logger: o.Logger, Hooks: o.Hooks}
}

func (o *Options) planarize() planarize.Options {
	return planarize.Options{VirtualStart: o.VirtualStart, Logger: o.Logger, Hooks: o.Hooks}
}

// =============================================================================
// Results
// =============================================================================

// Summary describes the input graph of a result.
type Summary struct {
	GraphHash string `json:"graph_hash"`
	Nodes     int    `json:"nodes"`
	Edges     int    `json:"edges"`
	// ReportID is set when the runner saved a report for this request.
	ReportID string `json:"report_id,omitempty"`
}

// CheckResult is the answer of [Runner.Check].
type CheckResult struct {
	Summary
	Verdict planarity.Verdict `json:"verdict"`
	// FailedAt is the label of the node whose reduction failed.
	FailedAt *int64 `json:"failed_at,omitempty"`
	// DiscardedEnds lists the end labels of the edges the quadratic tree
	// removed, parallel to Verdict.Discarded.
	DiscardedEnds [][2]int64 `json:"discarded_ends,omitempty"`
}

// EmbedResult is the answer of [Runner.Embed].
type EmbedResult struct {
	Summary
	Planar bool `json:"planar"`
	// Graph is the embedded graph in the JSON format of package io. It is
	// empty for a non-planar input.
	Graph json.RawMessage `json:"graph,omitempty"`
}

// PlanarizeResult is the answer of [Runner.Planarize].
type PlanarizeResult struct {
	Summary
	Crossings int `json:"crossings"`
	// Removed lists the input edges that were reinserted with crossings.
	Removed []graph.EdgeID `json:"removed"`
	// Output is the planarizer text output.
	Output string `json:"output"`
	// Graph is the planarized graph in the JSON format of package io. Edge
	// labels name the input edge every segment belongs to.
	Graph json.RawMessage `json:"graph"`
}
