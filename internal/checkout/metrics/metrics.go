package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	OperationsTotal      *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
	ChallengesIssued     *prometheus.CounterVec
	DegradedDependency   *prometheus.CounterVec
	FraudRecommendations *prometheus.CounterVec
}

// New registers the orchestrator metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_operations_total",
			Help: "Total number of orchestrator operations by operation, generation and outcome",
		}, []string{"operation", "generation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkout_operation_duration_seconds",
			Help:    "Duration of orchestrator operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		ChallengesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_challenges_issued_total",
			Help: "Total number of rendered challenge documents returned by generation",
		}, []string{"generation"}),
		DegradedDependency: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_degraded_dependency_total",
			Help: "Total number of best-effort dependency failures replaced by a fallback",
		}, []string{"dependency"}),
		FraudRecommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_fraud_recommendations_total",
			Help: "Recommendations used for instrument posts",
		}, []string{"recommendation"}),
	}
}

func (m *Metrics) ObserveOperation(operation, generation, outcome string, start time.Time) {
	m.OperationsTotal.WithLabelValues(operation, generation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementChallengesIssued(generation string) {
	m.ChallengesIssued.WithLabelValues(generation).Inc()
}

func (m *Metrics) IncrementDegraded(dependency string) {
	m.DegradedDependency.WithLabelValues(dependency).Inc()
}

func (m *Metrics) IncrementRecommendation(recommendation string) {
	m.FraudRecommendations.WithLabelValues(recommendation).Inc()
}
