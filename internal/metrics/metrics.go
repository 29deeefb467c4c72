// Package metrics exposes the Prometheus instrumentation of the recommender.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommender_generation_duration_seconds",
			Help:    "Duration of a full recommendation generation run",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	GenerationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_generations_total",
			Help: "Recommendation generation runs by outcome",
		},
		[]string{"outcome"}, // "success", "no_candidates", "error"
	)

	StageRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_stage_runs_total",
			Help: "Fallback stage executions",
		},
		[]string{"stage"},
	)

	StageCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_stage_candidates_total",
			Help: "Candidates contributed by each fallback stage",
		},
		[]string{"stage"},
	)

	// External service metrics
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_llm_requests_total",
			Help: "Text generation requests by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	LLMTokens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_llm_tokens_total",
			Help: "Tokens consumed by text generation",
		},
	)

	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_catalog_requests_total",
			Help: "Catalog API requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_catalog_cache_hits_total",
			Help: "Catalog searches served from cache",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_catalog_cache_misses_total",
			Help: "Catalog searches not found in cache",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommender_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTP metrics
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// RecordStage counts one stage run and the candidates it contributed.
func RecordStage(stage string, added int) {
	StageRuns.WithLabelValues(stage).Inc()
	if added > 0 {
		StageCandidates.WithLabelValues(stage).Add(float64(added))
	}
}

// RecordGeneration records the outcome and duration of a generation run.
func RecordGeneration(outcome string, elapsed time.Duration) {
	GenerationOutcomes.WithLabelValues(outcome).Inc()
	GenerationDuration.Observe(elapsed.Seconds())
}

// RecordCatalogRequest counts one catalog call.
func RecordCatalogRequest(operation string, err error) {
	CatalogRequests.WithLabelValues(operation, outcome(err)).Inc()
}

// RecordLLMRequest counts one generation call.
func RecordLLMRequest(model string, err error) {
	LLMRequests.WithLabelValues(model, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
