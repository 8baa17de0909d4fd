package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_assistant_generations_total",
			Help: "Total number of SQL generation calls.",
		},
	)
	generationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_assistant_generation_failures_total",
			Help: "Total number of failed SQL generation calls.",
		},
	)
	generationLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_assistant_generation_latency_ms",
			Help:    "SQL generation latency in milliseconds, including model inference.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
	)
	contextExtractionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_assistant_context_extractions_total",
			Help: "Total number of catalog DDL extractions.",
		},
	)
	contextExtractionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_assistant_context_extraction_failures_total",
			Help: "Total number of failed catalog DDL extractions.",
		},
	)
	engineInitialized = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_assistant_engine_initialized",
			Help: "Whether the generation engine has been constructed (0 or 1).",
		},
	)
)

func init() {
	prometheus.MustRegister(
		generationsTotal,
		generationFailuresTotal,
		generationLatencyMs,
		contextExtractionsTotal,
		contextExtractionFailuresTotal,
		engineInitialized,
	)
}

func ObserveGeneration(duration time.Duration, err error) {
	generationsTotal.Inc()
	generationLatencyMs.Observe(float64(duration.Milliseconds()))
	if err != nil {
		generationFailuresTotal.Inc()
	}
}

func ObserveContextExtraction(err error) {
	contextExtractionsTotal.Inc()
	if err != nil {
		contextExtractionFailuresTotal.Inc()
	}
}

func SetEngineInitialized() {
	engineInitialized.Set(1)
}
