package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrosight_pipeline_runs_total",
			Help: "Total pipeline invocations",
		},
		[]string{"outcome"}, // "success" or "failure"
	)

	StageFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrosight_stage_fallbacks_total",
			Help: "Stages that degraded to synthetic fallback data",
		},
		[]string{"stage"},
	)

	StageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agrosight_stage_latency_seconds",
			Help:    "Per-stage latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrosight_notifications_total",
			Help: "Notification dispatch outcomes",
		},
		[]string{"outcome"}, // "sent", "skipped" or "failed"
	)

	ImagesAnalyzedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agrosight_images_analyzed_total",
			Help: "Farmer images run through the analysis stage",
		},
	)
)
