// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommitsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_commits_completed_total",
			Help: "Total number of evaluation patches committed successfully",
		},
	)

	CommitsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_commits_failed_total",
			Help: "Total number of evaluation patch commits rejected by the store",
		},
		[]string{"error_code"},
	)

	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "console_store_request_duration_seconds",
			Help: "Duration of remote store requests in seconds",
		},
		[]string{"operation", "backend"},
	)

	NormalizationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_normalization_fallbacks_total",
			Help: "Total number of legacy string-shaped note payloads normalized",
		},
	)

	SnapshotCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_snapshot_cache_hits_total",
			Help: "Snapshot cache lookups by result",
		},
		[]string{"result"},
	)
)
