package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes sweep events to a logger at debug level. Reductions are
// only logged when they discarded leaves.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks { return &LogHooks{Logger: l} }

func (h *LogHooks) OnSweepStart(_ context.Context, algorithm string, nodes, edges int) {
	h.Logger.Debug("sweep started", "algorithm", algorithm, "nodes", nodes, "edges", edges)
}

func (h *LogHooks) OnReduction(_ context.Context, algorithm string, leaves, discarded int) {
	if discarded > 0 {
		h.Logger.Debug("leaves discarded", "algorithm", algorithm, "leaves", leaves, "discarded", discarded)
	}
}

func (h *LogHooks) OnSweepComplete(_ context.Context, algorithm string, planar bool, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("sweep abandoned", "algorithm", algorithm, "elapsed", d, "error", err)
		return
	}
	h.Logger.Debug("sweep finished", "algorithm", algorithm, "planar", planar, "elapsed", d)
}

// Tee forwards every reduction event to each of hooks in order.
func Tee(hooks ...ReductionHooks) ReductionHooks { return tee(hooks) }

type tee []ReductionHooks

func (t tee) OnSweepStart(ctx context.Context, algorithm string, nodes, edges int) {
	for _, h := range t {
		h.OnSweepStart(ctx, algorithm, nodes, edges)
	}
}

func (t tee) OnReduction(ctx context.Context, algorithm string, leaves, discarded int) {
	for _, h := range t {
		h.OnReduction(ctx, algorithm, leaves, discarded)
	}
}

func (t tee) OnSweepComplete(ctx context.Context, algorithm string, planar bool, d time.Duration, err error) {
	for _, h := range t {
		h.OnSweepComplete(ctx, algorithm, planar, d, err)
	}
}

var (
	_ ReductionHooks = (*LogHooks)(nil)
	_ ReductionHooks = tee(nil)
)
