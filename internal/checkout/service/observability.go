package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout/internal/checkout/ports"
	"checkout/pkg/domain"
	"checkout/pkg/platform/audit"
)

const (
	opAttachProfile           = "attach_profile"
	opAttachAddress           = "attach_address"
	opAttachPaymentInstrument = "attach_payment_instrument"
	opConfirm                 = "confirm"
)

func (s *Service) startSpan(ctx context.Context, operation string, sessionID domain.SessionID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "checkout."+operation,
		trace.WithAttributes(attribute.String("checkout.session_id", sessionID.String())),
	)
}

// finish closes the span and records the outcome of one public operation.
func (s *Service) finish(span trace.Span, operation string, gw ports.SessionGateway, start time.Time, err error) {
	generation := "unresolved"
	if gw != nil {
		generation = gw.Generation().String()
		span.SetAttributes(attribute.String("checkout.generation", generation))
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, generation, outcome, start)
	}
}

func (s *Service) audit(ctx context.Context, event audit.AuditEvent, sessionID domain.SessionID, partner domain.Partner, component, outcome string) {
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.Event{
		Category:  event.Category(),
		Action:    string(event),
		SessionID: sessionID,
		Partner:   partner,
		Component: component,
		Outcome:   outcome,
	})
}

func (s *Service) degraded(ctx context.Context, dependency string, sessionID domain.SessionID, partner domain.Partner, event audit.AuditEvent, err error) {
	s.logger.WarnContext(ctx, "dependency degraded, using fallback",
		"dependency", dependency,
		"session_id", sessionID,
		"partner", partner,
		"error", err,
	)
	if s.metrics != nil {
		s.metrics.IncrementDegraded(dependency)
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.Event{
		Category:  event.Category(),
		Action:    string(event),
		SessionID: sessionID,
		Partner:   partner,
		Component: dependency,
		Outcome:   "degraded",
		Reason:    err.Error(),
	})
}
