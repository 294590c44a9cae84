// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "houserocket_pipeline_runs_total",
		Help: "Pipeline runs by result.",
	}, []string{"result"})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "houserocket_pipeline_duration_seconds",
		Help:    "Duration of a full pipeline run.",
		Buckets: prometheus.DefBuckets,
	})

	SourceLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "houserocket_source_loads_total",
		Help: "Source lookups by kind and cache outcome.",
	}, []string{"kind", "cache"})

	WorthListings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "houserocket_worth_listings",
		Help: "Worth-buying listings in the most recent report.",
	})
)

// ObserveRun records the outcome of a pipeline run started at start.
func ObserveRun(start time.Time, err error) {
	PipelineDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		PipelineRuns.WithLabelValues("error").Inc()
		return
	}
	PipelineRuns.WithLabelValues("success").Inc()
}
