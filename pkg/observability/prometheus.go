package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	patches        *prometheus.CounterVec
	prepareSeconds *prometheus.HistogramVec
	commits        *prometheus.CounterVec
	commitSeconds  prometheus.Histogram
	visible        *prometheus.GaugeVec
	cacheOps       *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

var (
	_ CommitHooks = (*Prometheus)(nil)
	_ CacheHooks  = (*Prometheus)(nil)
	_ HTTPHooks   = (*Prometheus)(nil)
)

// NewPrometheus registers the collectors with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		patches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skelstore_patches_total",
				Help: "Patches received, by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		prepareSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skelstore_prepare_duration_seconds",
				Help:    "Time to validate and stage a patch",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"kind"},
		),
		commits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skelstore_commits_total",
				Help: "Committed batches, by outcome",
			},
			[]string{"status"},
		),
		commitSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skelstore_commit_duration_seconds",
				Help:    "Time to promote a batch and update the topology",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		visible: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skelstore_filter_visible",
				Help: "Entities made visible by the last selection, by mode",
			},
			[]string{"mode"},
		),
		cacheOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skelstore_cache_ops_total",
				Help: "Cache lookups and writes, by key type and result",
			},
			[]string{"type", "result"},
		),
		cacheBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skelstore_cache_bytes_written_total",
				Help: "Bytes written to the cache, by key type",
			},
			[]string{"type"},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skelstore_http_requests_total",
				Help: "HTTP requests, by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skelstore_http_request_duration_seconds",
				Help:    "Latency of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (p *Prometheus) OnPrepare(_ context.Context, kind string, d time.Duration) {
	p.patches.WithLabelValues(kind, "ok").Inc()
	p.prepareSeconds.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *Prometheus) OnReject(_ context.Context, kind string, _ error) {
	p.patches.WithLabelValues(kind, "rejected").Inc()
}

func (p *Prometheus) OnCommit(_ context.Context, _ uint32, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.commits.WithLabelValues(status).Inc()
	p.commitSeconds.Observe(d.Seconds())
}

func (p *Prometheus) OnFilter(_ context.Context, mode string, visible int) {
	p.visible.WithLabelValues(mode).Set(float64(visible))
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}
