package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Name:      "pipeline_runs_total",
			Help:      "Total pipeline runs by variant and terminal node",
		},
		[]string{"variant", "terminal"},
	)

	NodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hr",
			Name:      "pipeline_node_duration_seconds",
			Help:      "Pipeline node duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"node"},
	)

	FallbackResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Name:      "fallback_responses_total",
			Help:      "Fallback responses served by category",
		},
		[]string{"category"},
	)

	GuardBlocksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Name:      "guard_blocks_total",
			Help:      "Queries blocked by the personal-info guard",
		},
		[]string{"category"},
	)

	RetrievalHits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hr",
			Name:      "retrieval_hits",
			Help:      "Hits returned per retrieval",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10, 20},
		},
	)

	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Name:      "model_requests_total",
			Help:      "Completion and embedding requests by operation and status",
		},
		[]string{"op", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hr",
			Name:      "model_request_duration_seconds",
			Help:      "Completion and embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	MatchTypeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Name:      "match_type_total",
			Help:      "Content match results by type",
		},
		[]string{"match_type"},
	)
)

var registered bool

// Register registers the pipeline and HTTP metrics with the default
// registry. Safe to call more than once.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(PipelineRunsTotal)
	prometheus.MustRegister(NodeDuration)
	prometheus.MustRegister(FallbackResponsesTotal)
	prometheus.MustRegister(GuardBlocksTotal)
	prometheus.MustRegister(RetrievalHits)
	prometheus.MustRegister(MatchTypeTotal)
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(ModelRequestDuration)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	registered = true
}
