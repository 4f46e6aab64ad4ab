package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage labels.
const (
	StageSender   = "sender"
	StageReceiver = "receiver"
	StagePipeline = "pipeline"
)

// Operation labels.
const (
	OpRead  = "read"
	OpWrite = "write"
	OpChild = "child"
)

// Metrics holds all Prometheus metrics of one process. Every instance owns a
// private registry so independent runs (and tests) never collide.
//
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	RecordsSent      prometheus.Counter
	RecordsProcessed prometheus.Counter
	StreamErrors     *prometheus.CounterVec
	WriteDuration    *prometheus.HistogramVec
	RunDuration      *prometheus.GaugeVec

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RecordsSent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pipedemo_records_sent_total",
				Help: "Total number of records written by the sender",
			},
		),
		RecordsProcessed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pipedemo_records_processed_total",
				Help: "Total number of records processed by the receiver",
			},
		),
		StreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipedemo_stream_errors_total",
				Help: "Total number of fatal stream errors",
			},
			[]string{"stage", "op"},
		),
		WriteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipedemo_record_write_seconds",
				Help:    "Time spent writing and flushing one record",
				Buckets: []float64{.00001, .0001, .001, .01, .1, 1, 10},
			},
			[]string{"stage"},
		),
		RunDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipedemo_run_duration_seconds",
				Help: "Wall time of the run, set when the run ends",
			},
			[]string{"stage"},
		),
	}
}

// IncSent increments the sent records counter
func (m *Metrics) IncSent() {
	if m == nil {
		return
	}
	m.RecordsSent.Inc()
}

// IncProcessed increments the processed records counter
func (m *Metrics) IncProcessed() {
	if m == nil {
		return
	}
	m.RecordsProcessed.Inc()
}

// RecordStreamError records a fatal stream error
func (m *Metrics) RecordStreamError(stage, op string) {
	if m == nil {
		return
	}
	m.StreamErrors.WithLabelValues(stage, op).Inc()
}

// ObserveWrite records the duration of one record write
func (m *Metrics) ObserveWrite(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.WriteDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// MarkDone sets the run duration for stage from the collector's creation time
func (m *Metrics) MarkDone(stage string) {
	if m == nil {
		return
	}
	m.RunDuration.WithLabelValues(stage).Set(time.Since(m.startTime).Seconds())
}
