// Package service implements the checkout confirmation orchestrator: the
// attach-profile, attach-address, attach-payment-instrument and confirm steps
// over either session API generation.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"checkout/internal/checkout/metrics"
	"checkout/internal/checkout/ports"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
	"checkout/pkg/platform/circuit"
)

const tracerName = "checkout/internal/checkout/service"

// Gateways holds one session gateway per API generation.
type Gateways struct {
	Legacy ports.SessionGateway
	Next   ports.SessionGateway
}

// For returns the gateway serving gen.
func (g Gateways) For(gen domain.APIGeneration) (ports.SessionGateway, error) {
	switch gen {
	case domain.GenerationLegacy:
		if g.Legacy == nil {
			return nil, dErrors.New(dErrors.CodeUnavailable, "legacy session api is not configured")
		}
		return g.Legacy, nil
	case domain.GenerationNext:
		if g.Next == nil {
			return nil, dErrors.New(dErrors.CodeUnavailable, "payment request api is not configured")
		}
		return g.Next, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown api generation %q", gen))
	}
}

type Service struct {
	gateways          Gateways
	validator         ports.AddressValidator
	instruments       ports.InstrumentStore
	fraud             ports.FraudEvaluator
	challenges        ports.ChallengeRenderer
	composer          ports.DocumentComposer
	settings          ports.PartnerSettings
	fraudBreaker      *circuit.Breaker
	auditPublisher    ports.AuditPublisher
	defaultGeneration domain.APIGeneration
	logger            *slog.Logger
	metrics           *metrics.Metrics
	tracer            trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithPartnerSettings enables table-driven feature selection for rendered
// challenge documents.
func WithPartnerSettings(settings ports.PartnerSettings) Option {
	return func(s *Service) {
		s.settings = settings
	}
}

// WithFraudBreaker skips fraud evaluation while the breaker is open.
func WithFraudBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.fraudBreaker = b
	}
}

// WithDefaultGeneration sets the generation used when a request names none.
func WithDefaultGeneration(gen domain.APIGeneration) Option {
	return func(s *Service) {
		s.defaultGeneration = gen
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(
	gateways Gateways,
	validator ports.AddressValidator,
	instruments ports.InstrumentStore,
	fraud ports.FraudEvaluator,
	challenges ports.ChallengeRenderer,
	composer ports.DocumentComposer,
	opts ...Option,
) (*Service, error) {
	if gateways.Legacy == nil && gateways.Next == nil {
		return nil, errors.New("at least one session gateway is required")
	}
	if validator == nil {
		return nil, errors.New("address validator is required")
	}
	if instruments == nil {
		return nil, errors.New("instrument store is required")
	}
	if fraud == nil {
		return nil, errors.New("fraud evaluator is required")
	}
	if challenges == nil {
		return nil, errors.New("challenge renderer is required")
	}
	if composer == nil {
		return nil, errors.New("document composer is required")
	}

	svc := &Service{
		gateways:          gateways,
		validator:         validator,
		instruments:       instruments,
		fraud:             fraud,
		challenges:        challenges,
		composer:          composer,
		defaultGeneration: domain.GenerationLegacy,
		logger:            slog.Default(),
		tracer:            otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// gateway resolves the generation once per call.
func (s *Service) gateway(gen domain.APIGeneration) (ports.SessionGateway, error) {
	if gen == "" {
		gen = s.defaultGeneration
	}
	return s.gateways.For(gen)
}
