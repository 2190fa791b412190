// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the triage service.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "triage"

// Metrics holds all triage Prometheus metrics.
type Metrics struct {
	CasesProcessed    *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	DistressTotal     *prometheus.CounterVec
	DuplicatesTotal   prometheus.Counter
	AlertsTotal       prometheus.Counter
	ManualReviewTotal prometheus.Counter

	// Worker pool backpressure.
	QueueDepth    prometheus.Gauge
	ActiveWorkers prometheus.Gauge
	PoolRejected  prometheus.Counter
}

// Provider wraps the metrics registry and tracer.
type Provider struct {
	Metrics  *Metrics
	registry *prometheus.Registry
	tracer   trace.Tracer
}

// NewProvider creates a telemetry provider with its own registry so tests
// can construct providers independently.
func NewProvider() *Provider {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		CasesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "cases_processed_total",
			Help:      "Cases processed through the pipeline, by assigned department.",
		}, []string{"department"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "stage_duration_seconds",
			Help:      "Per-stage processing duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		DistressTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "distress_level_total",
			Help:      "Processed cases by distress level.",
		}, []string{"level"}),
		DuplicatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "duplicates_detected_total",
			Help:      "Duplicate submissions detected.",
		}),
		AlertsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "pattern_alerts_total",
			Help:      "Proactive area-pattern alerts emitted.",
		}),
		ManualReviewTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "manual_review_total",
			Help:      "Cases flagged for manual classification review.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "pool_queue_depth",
			Help:      "Items waiting in the intake worker pool.",
		}),
		ActiveWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "pool_active_workers",
			Help:      "Worker goroutines currently processing.",
		}),
		PoolRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "pool_rejected_total",
			Help:      "Submissions rejected by pool backpressure.",
		}),
	}

	return &Provider{
		Metrics:  m,
		registry: registry,
		tracer:   otel.Tracer(serviceName),
	}
}

// Tracer returns the service tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Handler returns the /metrics HTTP handler.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// ObserveStage records one stage's duration.
func (p *Provider) ObserveStage(stage string, d time.Duration) {
	p.Metrics.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
