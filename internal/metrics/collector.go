package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
)

// Module provides the metrics registry and collector
var Module = fx.Options(
	fx.Provide(NewRegistry),
	fx.Provide(func(r *prometheus.Registry) prometheus.Gatherer { return r }),
	fx.Provide(func(r *prometheus.Registry) prometheus.Registerer { return r }),
	fx.Provide(NewCollector),
	fx.Provide(func(c *Collector) domain.MetricsCollector { return c }),
)

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

type Collector struct {
	logger        *zap.Logger
	fetchesTotal  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	responseBytes prometheus.Histogram
	parsedTotal   *prometheus.CounterVec
	menuItems     prometheus.Histogram
	workerStarts  *prometheus.CounterVec
	workerStops   *prometheus.CounterVec
	activeWorkers prometheus.Gauge
	jobsQueued    prometheus.Counter
}

func NewCollector(reg prometheus.Registerer, logger *zap.Logger) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		logger: logger,
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopher_fetches_total",
				Help: "Total number of Gopher fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gopher_fetch_duration_seconds",
				Help:    "Duration of Gopher round trips",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		responseBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gopher_response_bytes",
				Help:    "Size of successful Gopher responses",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
		),
		parsedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopher_parsed_total",
				Help: "Parsed responses by classification",
			},
			[]string{"kind"},
		),
		menuItems: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gopher_menu_items",
				Help:    "Number of items in parsed menus",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		workerStarts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopher_worker_starts_total",
				Help: "Total number of worker starts",
			},
			[]string{"worker_id"},
		),
		workerStops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopher_worker_stops_total",
				Help: "Total number of worker stops",
			},
			[]string{"worker_id"},
		),
		activeWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gopher_active_workers",
				Help: "Number of currently active workers",
			},
		),
		jobsQueued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gopher_jobs_queued_total",
				Help: "Total number of fetch jobs queued",
			},
		),
	}
}

func (c *Collector) RecordFetch(result domain.FetchResult) {
	outcome := string(result.Outcome)
	c.fetchesTotal.WithLabelValues(outcome).Inc()
	c.fetchDuration.WithLabelValues(outcome).Observe(result.Duration.Seconds())

	if result.Outcome == domain.OutcomeSuccess {
		c.responseBytes.Observe(float64(result.Bytes))
	}
}

func (c *Collector) RecordParse(content domain.ParsedContent) {
	if content.IsMenu {
		c.parsedTotal.WithLabelValues("menu").Inc()
		c.menuItems.Observe(float64(len(content.Items)))
		return
	}
	c.parsedTotal.WithLabelValues("text").Inc()
}

func (c *Collector) RecordWorkerStart(workerID string) {
	c.workerStarts.WithLabelValues(workerID).Inc()
	c.activeWorkers.Inc()
}

func (c *Collector) RecordWorkerStop(workerID string) {
	c.workerStops.WithLabelValues(workerID).Inc()
	c.activeWorkers.Dec()
}

func (c *Collector) RecordJobQueued() {
	c.jobsQueued.Inc()
}
