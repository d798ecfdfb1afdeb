package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeEnrichmentError = "enrichment_error"
	OutcomeRenderError     = "render_error"
	OutcomeStorageError    = "storage_error"
)

var (
	registry = prometheus.NewRegistry()

	renderTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_render_total",
		Help: "Total resume renders by outcome",
	}, []string{"outcome"})

	renderDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_render_duration_seconds",
		Help:    "Resume render duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	overflowWarnings = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_overflow_warnings_total",
		Help: "Soft content limit warnings by field group",
	}, []string{"field"})
)

func init() {
	registry.MustRegister(
		renderTotal,
		renderDuration,
		overflowWarnings,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncRender counts one finished render attempt.
func IncRender(outcome string) {
	renderTotal.WithLabelValues(outcome).Inc()
}

// ObserveRenderDuration records how long a render took.
func ObserveRenderDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	renderDuration.Observe(d.Seconds())
}

// IncOverflowWarning counts a soft limit warning. Field is the top-level
// record field, without list indexes, to keep label cardinality bounded.
func IncOverflowWarning(field string) {
	overflowWarnings.WithLabelValues(field).Inc()
}

// Registry exposes the registry for tests and additional collectors.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
