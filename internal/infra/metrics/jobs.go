package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(jobsProcessedTotal, jobDurationMs) }

var jobsProcessedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "transcript_jobs_processed_total",
		Help: "Total number of transcript jobs processed, labeled by outcome.",
	},
	[]string{"status"}, // 'completed', 'failed', 'cached'
)

var jobDurationMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "transcript_job_duration_ms",
		Help:    "End-to-end transcript job duration in milliseconds.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
	},
	[]string{"status"},
)

func ObserveJob(status string, durationMs float64) {
	jobsProcessedTotal.WithLabelValues(norm(status)).Inc()
	jobDurationMs.WithLabelValues(norm(status)).Observe(durationMs)
}
