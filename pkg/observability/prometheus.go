package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks records every hook event as Prometheus metrics. It
// implements [ReductionHooks], [CacheHooks] and [HTTPHooks].
type PrometheusHooks struct {
	sweeps        *prometheus.CounterVec
	sweepDuration *prometheus.HistogramVec
	reductions    *prometheus.CounterVec
	leaves        *prometheus.HistogramVec
	discarded     *prometheus.CounterVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusHooks registers the planarity metrics with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		sweeps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planarity_sweeps_total",
			Help: "Completed PQ-tree sweeps by algorithm and verdict",
		}, []string{"algorithm", "result"}),
		sweepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planarity_sweep_duration_seconds",
			Help:    "Duration of one PQ-tree sweep over an st-order",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12), // 10µs to ~40s
		}, []string{"algorithm"}),
		reductions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planarity_reductions_total",
			Help: "PQ-tree reductions by algorithm",
		}, []string{"algorithm"}),
		leaves: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planarity_reduction_leaves",
			Help:    "Pertinent leaves per reduction",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"algorithm"}),
		discarded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planarity_discarded_leaves_total",
			Help: "Leaves discarded by the quadratic tree to keep reductions feasible",
		}, []string{"algorithm"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planarity_cache_events_total",
			Help: "Cache lookups and writes by key type and outcome",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planarity_cache_written_bytes_total",
			Help: "Bytes written to the result cache",
		}, []string{"key_type"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planarity_http_requests_total",
			Help: "HTTP API responses by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planarity_http_request_duration_seconds",
			Help:    "HTTP API latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (p *PrometheusHooks) OnSweepStart(context.Context, string, int, int) {}

func (p *PrometheusHooks) OnReduction(_ context.Context, algorithm string, leaves, discarded int) {
	p.reductions.WithLabelValues(algorithm).Inc()
	p.leaves.WithLabelValues(algorithm).Observe(float64(leaves))
	if discarded > 0 {
		p.discarded.WithLabelValues(algorithm).Add(float64(discarded))
	}
}

func (p *PrometheusHooks) OnSweepComplete(_ context.Context, algorithm string, planar bool, d time.Duration, err error) {
	result := "non_planar"
	switch {
	case err != nil:
		result = "error"
	case planar:
		result = "planar"
	}
	p.sweeps.WithLabelValues(algorithm, result).Inc()
	p.sweepDuration.WithLabelValues(algorithm).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
