package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FeaturesApplied   *prometheus.CounterVec
	DocumentsRendered *prometheus.CounterVec
	ApplyDuration     prometheus.Histogram
}

// New registers the pipeline metrics with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FeaturesApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_pidl_features_applied_total",
			Help: "Total number of feature applications by feature name",
		}, []string{"feature"}),
		DocumentsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_pidl_documents_rendered_total",
			Help: "Total number of documents passed through the pipeline by description type",
		}, []string{"description_type"}),
		ApplyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "checkout_pidl_apply_duration_seconds",
			Help:    "Time spent applying features to a document set",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}
}

func (m *Metrics) IncrementFeatureApplied(feature string) {
	m.FeaturesApplied.WithLabelValues(feature).Inc()
}

func (m *Metrics) IncrementDocumentsRendered(descriptionType string) {
	m.DocumentsRendered.WithLabelValues(descriptionType).Inc()
}

func (m *Metrics) ObserveApplyDuration(start time.Time) {
	m.ApplyDuration.Observe(time.Since(start).Seconds())
}
