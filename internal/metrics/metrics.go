package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hey_there"

// Collector implements session.Metrics on top of a prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	chunks        prometheus.Counter
	chunkBytes    prometheus.Counter
	records       *prometheus.CounterVec
	decodeErrors  *prometheus.CounterVec
	snapshots     prometheus.Counter
	sessions      *prometheus.CounterVec
	sessionTime   *prometheus.HistogramVec
	edits         *prometheus.CounterVec
	activeStreams prometheus.Gauge
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_chunks_total",
			Help:      "Raw chunks received from the model.",
		}),
		chunkBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_bytes_total",
			Help:      "Bytes received from the model.",
		}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_decoded_total",
			Help:      "Tagged payloads decoded, by tag.",
		}, []string{"tag"}),
		decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Tagged payloads dropped because they did not decode, by tag.",
		}, []string{"tag"}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Plan snapshots handed to consumers.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Finished generation sessions, by final state.",
		}, []string{"state"}),
		sessionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Wall time of generation sessions, by final state.",
			Buckets:   []float64{1, 2.5, 5, 10, 15, 20, 30, 45, 60},
		}, []string{"state"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Plan edit requests, by result.",
		}, []string{"result"}),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Generation sessions currently streaming.",
		}),
	}
	c.registry.MustRegister(
		c.chunks, c.chunkBytes, c.records, c.decodeErrors, c.snapshots,
		c.sessions, c.sessionTime, c.edits, c.activeStreams,
	)
	return c
}

func (c *Collector) ChunkReceived(bytes int) {
	c.chunks.Inc()
	c.chunkBytes.Add(float64(bytes))
}

func (c *Collector) RecordDecoded(tag string) {
	c.records.WithLabelValues(tag).Inc()
}

func (c *Collector) DecodeFailed(tag string) {
	c.decodeErrors.WithLabelValues(tag).Inc()
}

func (c *Collector) SnapshotPublished() {
	c.snapshots.Inc()
}

func (c *Collector) SessionFinished(state string, elapsed time.Duration) {
	c.sessions.WithLabelValues(state).Inc()
	c.sessionTime.WithLabelValues(state).Observe(elapsed.Seconds())
}

func (c *Collector) SessionStarted() {
	c.activeStreams.Inc()
}

func (c *Collector) SessionStopped() {
	c.activeStreams.Dec()
}

func (c *Collector) EditFinished(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.edits.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
