// Package metrics exposes Prometheus instrumentation for analysis passes:
// routing volume, fallback frequency, inferred loops, and validation
// findings. Each Registry owns a private prometheus.Registry so embedding
// applications can mount or ignore it without global-state collisions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the engine's metric instruments.
type Registry struct {
	registry *prometheus.Registry

	PipesRouted      prometheus.Counter
	FallbackPaths    prometheus.Counter
	ObstaclesIndexed prometheus.Counter

	LoopsInferred      prometheus.Gauge
	InterlocksFound    prometheus.Gauge
	ValidationErrors   prometheus.Gauge
	ValidationWarnings prometheus.Gauge

	AnalysisDuration prometheus.Histogram
}

// NewRegistry creates a registry with all engine metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initRoutingMetrics()
	r.initAnalysisMetrics()
	return r
}

func (r *Registry) initRoutingMetrics() {
	r.PipesRouted = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pnid_pipes_routed_total",
			Help: "Total number of pipes routed through the grid planner",
		},
	)

	r.FallbackPaths = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pnid_fallback_paths_total",
			Help: "Routing requests that fell back to the synthetic two-bend path",
		},
	)

	r.ObstaclesIndexed = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pnid_obstacles_indexed_total",
			Help: "Component footprints added to the spatial index",
		},
	)
}

func (r *Registry) initAnalysisMetrics() {
	r.LoopsInferred = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pnid_control_loops",
			Help: "Control loops inferred in the last analysis pass",
		},
	)

	r.InterlocksFound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pnid_interlocks",
			Help: "Safety interlocks inferred in the last analysis pass",
		},
	)

	r.ValidationErrors = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pnid_validation_errors",
			Help: "Errors reported by the last validation pass",
		},
	)

	r.ValidationWarnings = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pnid_validation_warnings",
			Help: "Warnings reported by the last validation pass",
		},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pnid_analysis_duration_seconds",
			Help:    "Wall-clock duration of full analysis passes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
}

// Gatherer exposes the underlying registry for scraping or test
// inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
