// Package pipeline applies the enabled composition features to a request's
// resource documents.
package pipeline

import (
	"errors"
	"log/slog"
	"time"

	"checkout/internal/pidl/feature"
	"checkout/internal/pidl/metrics"
	"checkout/internal/pidl/models"
)

// Pipeline is stateless apart from its read-only registry and may be shared
// across requests.
type Pipeline struct {
	registry *feature.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

func New(registry *feature.Registry, opts ...Option) (*Pipeline, error) {
	if registry == nil {
		return nil, errors.New("feature registry is required")
	}
	p := &Pipeline{registry: registry}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Select returns the features enabled for c, in registration order.
func (p *Pipeline) Select(c feature.Context) []feature.Feature {
	return p.registry.Select(c)
}

// Apply runs every enabled feature's actions against docs, mutating them in
// place. Features run in registration order; each feature's actions run in
// declaration order.
func (p *Pipeline) Apply(docs []*models.ResourceDocument, c feature.Context) *feature.Decisions {
	start := time.Now()
	decisions := feature.NewDecisions()
	for _, f := range p.registry.Select(c) {
		for _, action := range f.Actions() {
			action(docs, c, decisions)
		}
		decisions.MarkApplied(f.Name())
		if p.metrics != nil {
			p.metrics.IncrementFeatureApplied(string(f.Name()))
		}
	}
	if p.metrics != nil {
		for _, doc := range docs {
			if doc != nil {
				p.metrics.IncrementDocumentsRendered(doc.DescriptionType())
			}
		}
		p.metrics.ObserveApplyDuration(start)
	}
	if p.logger != nil {
		p.logger.Debug("pidl features applied",
			"partner", c.Partner(),
			"documents", len(docs),
			"features", decisions.Applied(),
			"table_driven", c.TableDriven(),
		)
	}
	return decisions
}

// Render applies the pipeline and returns the decorated documents.
func (p *Pipeline) Render(docs []*models.ResourceDocument, c feature.Context) ([]*models.ResourceDocument, *feature.Decisions) {
	decisions := p.Apply(docs, c)
	return docs, decisions
}
