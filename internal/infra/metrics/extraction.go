package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(extractionLatencyMs, breakerState) }

var extractionLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "extraction_calls_latency_ms",
		Help:    "Extraction provider call latency distribution in milliseconds.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2000, 4000, 8000, 16000, 30000},
	},
	[]string{"provider", "success"},
)

var breakerState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "extraction_breaker_state",
		Help: "Circuit breaker state for the extraction provider (0=closed, 1=half-open, 2=open).",
	},
	[]string{"breaker"},
)

func ObserveExtraction(provider string, latencyMs int, success bool) {
	extractionLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func SetBreakerState(name string, state float64) {
	breakerState.WithLabelValues(norm(name)).Set(state)
}
