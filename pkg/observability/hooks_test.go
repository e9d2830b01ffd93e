package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Reduction hooks
	r := NoopReductionHooks{}
	r.OnSweepStart(ctx, "bl", 5, 10)
	r.OnReduction(ctx, "bl", 4, 0)
	r.OnSweepComplete(ctx, "bl", false, time.Millisecond, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "check")
	c.OnCacheMiss(ctx, "embed")
	c.OnCacheSet(ctx, "planarize", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/check")
	h.OnResponse(ctx, "POST", "/v1/check", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Reduction().(NoopReductionHooks); !ok {
		t.Error("Reduction() should return NoopReductionHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customReduction := &testReductionHooks{}
	SetReductionHooks(customReduction)
	if Reduction() != customReduction {
		t.Error("SetReductionHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Reduction().(NoopReductionHooks); !ok {
		t.Error("Reset() should restore NoopReductionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testReductionHooks{}
	SetReductionHooks(custom)

	// Setting nil should be ignored
	SetReductionHooks(nil)

	if Reduction() != custom {
		t.Error("SetReductionHooks(nil) should be ignored")
	}

	Reset()
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheusHooks(reg)

	p.OnReduction(ctx, "jts", 6, 2)
	p.OnReduction(ctx, "jts", 3, 0)
	p.OnSweepComplete(ctx, "jts", false, time.Millisecond, nil)
	p.OnSweepComplete(ctx, "bl", true, time.Millisecond, nil)
	p.OnSweepComplete(ctx, "bl", false, time.Millisecond, errors.New("boom"))
	p.OnCacheHit(ctx, "check")
	p.OnCacheSet(ctx, "check", 100)
	p.OnResponse(ctx, "POST", "/v1/check", 200, time.Millisecond)

	if got := testutil.ToFloat64(p.reductions.WithLabelValues("jts")); got != 2 {
		t.Errorf("reductions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.discarded.WithLabelValues("jts")); got != 2 {
		t.Errorf("discarded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.sweeps.WithLabelValues("bl", "error")); got != 1 {
		t.Errorf("error sweeps = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.cacheBytes.WithLabelValues("check")); got != 100 {
		t.Errorf("cache bytes = %v, want 100", got)
	}

	want := `
# HELP planarity_sweeps_total Completed PQ-tree sweeps by algorithm and verdict
# TYPE planarity_sweeps_total counter
planarity_sweeps_total{algorithm="bl",result="error"} 1
planarity_sweeps_total{algorithm="bl",result="planar"} 1
planarity_sweeps_total{algorithm="jts",result="non_planar"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "planarity_sweeps_total"); err != nil {
		t.Error(err)
	}
}

// Test implementations
type testReductionHooks struct{ NoopReductionHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
