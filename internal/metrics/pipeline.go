// Package metrics exposes prometheus collectors for pipeline runs.
// All methods are nil-safe so callers never guard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PipelineMetrics struct {
	runs     prometheus.Counter
	failures prometheus.Counter
	dropped  *prometheus.CounterVec
	imputed  prometheus.Counter
	excluded prometheus.Counter
	duration prometheus.Histogram
}

// NewPipelineMetrics registers the pipeline collectors on reg. A nil
// registerer yields a no-op instance.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	m := &PipelineMetrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Completed pipeline runs.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pipeline_run_failures_total",
			Help: "Pipeline runs aborted before producing a result.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_rows_dropped_total",
			Help: "Input rows dropped during normalization.",
		}, []string{"dataset"}),
		imputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pipeline_rows_imputed_total",
			Help: "Zero-cost rows re-imputed from the average cost per click.",
		}),
		excluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pipeline_rows_excluded_total",
			Help: "Rows excluded from ROI for a zero post-imputation cost.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Duration of pipeline runs in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.runs, m.failures, m.dropped, m.imputed, m.excluded, m.duration)
	return m
}

func (m *PipelineMetrics) IncRun() {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.Inc()
}

func (m *PipelineMetrics) IncFailure() {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.Inc()
}

func (m *PipelineMetrics) AddDropped(dataset string, n int) {
	if m == nil || m.dropped == nil || n == 0 {
		return
	}
	m.dropped.WithLabelValues(dataset).Add(float64(n))
}

func (m *PipelineMetrics) AddImputed(n int) {
	if m == nil || m.imputed == nil || n == 0 {
		return
	}
	m.imputed.Add(float64(n))
}

func (m *PipelineMetrics) AddExcluded(n int) {
	if m == nil || m.excluded == nil || n == 0 {
		return
	}
	m.excluded.Add(float64(n))
}

func (m *PipelineMetrics) ObserveDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
