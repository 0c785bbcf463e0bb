package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	tasks           prometheus.Gauge
	intents         *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklist_mutations_total",
			Help: "Applied task mutations by operation",
		}, []string{"op"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklist_persist_failures_total",
			Help: "Failed slot loads and saves",
		}, []string{"op"}),
		tasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tasklist_tasks",
			Help: "Tasks currently held in memory",
		}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklist_intents_total",
			Help: "Dispatched intents by source and action",
		}, []string{"source", "action"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.mutations, m.persistFailures, m.tasks, m.intents, m.requests, m.requestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (used by tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Mutation(op string, size int) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
	m.tasks.Set(float64(size))
}

func (m *Metrics) PersistFailure(op string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) Loaded(size int) {
	if m == nil {
		return
	}
	m.tasks.Set(float64(size))
}

func (m *Metrics) Intent(source, action string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(source, action).Inc()
}

func (m *Metrics) Request(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
