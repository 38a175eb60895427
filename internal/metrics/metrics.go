// Package metrics implements the observability hooks on Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// Namespace prefixes every metric name.
const Namespace = "graphkit"

// Collector holds the Prometheus metrics of one process. It implements
// [observability.ImportHooks], [observability.EventHooks] and
// [observability.ServerHooks].
type Collector struct {
	registry *prometheus.Registry

	importsStarted *prometheus.CounterVec
	imports        *prometheus.CounterVec
	importDuration *prometheus.HistogramVec
	importVertices *prometheus.CounterVec
	importEdges    *prometheus.CounterVec

	dispatched     *prometheus.CounterVec
	deliveries     *prometheus.CounterVec
	listenerPanics *prometheus.CounterVec
	depthExceeded  prometheus.Counter

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var (
	_ observability.ImportHooks = (*Collector)(nil)
	_ observability.EventHooks  = (*Collector)(nil)
	_ observability.ServerHooks = (*Collector)(nil)
)

// New creates a collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		importsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imports_started_total",
			Help:      "Imports started, by format and identity regime.",
		}, []string{"format", "regime"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imports_total",
			Help:      "Finished imports, by format, identity regime and error code.",
		}, []string{"format", "regime", "code"}),
		importDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "import_duration_seconds",
			Help:      "Import duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		importVertices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imported_vertices_total",
			Help:      "Vertices installed by imports.",
		}, []string{"format"}),
		importEdges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imported_edges_total",
			Help:      "Edges installed by imports.",
		}, []string{"format"}),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_dispatched_total",
			Help:      "Graph events dispatched, by kind.",
		}, []string{"kind"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "event_deliveries_total",
			Help:      "Listener invocations, by event kind.",
		}, []string{"kind"}),
		listenerPanics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "listener_panics_total",
			Help:      "Listeners that panicked and were skipped.",
		}, []string{"kind"}),
		depthExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "event_depth_exceeded_total",
			Help:      "Mutations rejected because nested emission went too deep.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	c.registry.MustRegister(
		c.importsStarted, c.imports, c.importDuration, c.importVertices, c.importEdges,
		c.dispatched, c.deliveries, c.listenerPanics, c.depthExceeded,
		c.requests, c.requestDuration,
	)
	return c
}

// Install registers c as the process-wide hooks.
func (c *Collector) Install() {
	observability.SetImportHooks(c)
	observability.SetEventHooks(c)
	observability.SetServerHooks(c)
}

// Registry returns the registry holding c's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) OnImportStart(_ context.Context, format, regime string) {
	c.importsStarted.WithLabelValues(format, regime).Inc()
}

func (c *Collector) OnImportComplete(_ context.Context, format, regime string, stats observability.ImportStats, d time.Duration, err error) {
	code := "OK"
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = "UNKNOWN"
		}
	}
	c.imports.WithLabelValues(format, regime, code).Inc()
	c.importDuration.WithLabelValues(format).Observe(d.Seconds())
	c.importVertices.WithLabelValues(format).Add(float64(stats.Vertices))
	c.importEdges.WithLabelValues(format).Add(float64(stats.Edges))
}

func (c *Collector) OnDispatch(kind string, listeners int) {
	c.dispatched.WithLabelValues(kind).Inc()
	c.deliveries.WithLabelValues(kind).Add(float64(listeners))
}

func (c *Collector) OnListenerPanic(kind string, _ any) {
	c.listenerPanics.WithLabelValues(kind).Inc()
}

func (c *Collector) OnDepthExceeded(int) { c.depthExceeded.Inc() }

func (c *Collector) OnRequest(_ context.Context, route string, status int, d time.Duration) {
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}
