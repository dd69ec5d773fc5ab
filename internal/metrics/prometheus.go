package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edugzlez/electosim/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a PrometheusCollector that is never used leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	events      *prometheus.CounterVec
	regions     prometheus.Gauge
	candidacies prometheus.Gauge

	recomputes        *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	recomputeSkipped  *prometheus.CounterVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace ("electosim" if empty)
//
// Returns:
//   - *PrometheusCollector: Collector ready for electosim.WithMetrics
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewPrometheus(reg, "")
//	sys, err := electosim.NewSystem(nil, cfg, electosim.WithMetrics(collector))
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "electosim"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.events = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "system",
			Name:      "events_total",
			Help:      "Total events dispatched to the district configuration by kind.",
		}, []string{"kind"})

		p.regions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "system",
			Name:      "regions",
			Help:      "Current number of regions in the tree.",
		})

		p.candidacies = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "system",
			Name:      "candidacies",
			Help:      "Current number of candidacies in the tree.",
		})

		p.recomputes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "district",
			Name:      "recomputes_total",
			Help:      "Total district recomputes by scope and result (success, failure).",
		}, []string{"scope", "result"})

		p.recomputeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "district",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of district recomputes in seconds by scope.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{"scope"})

		p.recomputeSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "district",
			Name:      "recomputes_skipped_total",
			Help:      "Total recomputes skipped because the scope was unchanged, by scope.",
		}, []string{"scope"})

		p.reg.MustRegister(p.events)
		p.reg.MustRegister(p.regions)
		p.reg.MustRegister(p.candidacies)
		p.reg.MustRegister(p.recomputes)
		p.reg.MustRegister(p.recomputeDuration)
		p.reg.MustRegister(p.recomputeSkipped)
	})
}

// SystemMetrics implementation

// RecordEvent increments the event counter for kind.
func (p *PrometheusCollector) RecordEvent(kind types.EventKind) {
	p.ensureRegistered()
	p.events.WithLabelValues(kind.String()).Inc()
}

// RecordRegionCount sets the region gauge.
func (p *PrometheusCollector) RecordRegionCount(count int) {
	p.ensureRegistered()
	p.regions.Set(float64(count))
}

// RecordCandidacyCount sets the candidacy gauge.
func (p *PrometheusCollector) RecordCandidacyCount(count int) {
	p.ensureRegistered()
	p.candidacies.Set(float64(count))
}

// DistrictMetrics implementation

// RecordRecompute counts one recompute and observes its duration.
func (p *PrometheusCollector) RecordRecompute(scope string, duration float64, success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "failure"
	}
	p.recomputes.WithLabelValues(scope, result).Inc()
	p.recomputeDuration.WithLabelValues(scope).Observe(duration)
}

// RecordRecomputeSkipped counts one skipped recompute.
func (p *PrometheusCollector) RecordRecomputeSkipped(scope string) {
	p.ensureRegistered()
	p.recomputeSkipped.WithLabelValues(scope).Inc()
}
