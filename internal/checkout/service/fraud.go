package service

import (
	"context"
	"errors"

	"checkout/internal/checkout/models"
	"checkout/pkg/platform/audit"
)

const dependencyFraud = "fraud"

var errFraudCircuitOpen = errors.New("fraud evaluation circuit is open")

// recommendation evaluates the post best-effort. Fraud-service failures
// never reach the caller: they degrade to an approved recommendation.
func (s *Service) recommendation(ctx context.Context, req models.AttachPaymentInstrumentRequest) models.Recommendation {
	result := s.evaluateFraud(ctx, req)
	if result.Degraded() {
		s.degraded(ctx, dependencyFraud, req.SessionID, req.Partner, audit.EventFraudDegraded, result.Err())
	}
	rec := result.OrElse(models.RecommendationApproved)
	if rec == models.RecommendationRejected {
		s.audit(ctx, audit.EventFraudRejected, req.SessionID, req.Partner, string(models.ComponentPayment), string(rec))
	}
	if s.metrics != nil {
		s.metrics.IncrementRecommendation(string(rec))
	}
	return rec
}

func (s *Service) evaluateFraud(ctx context.Context, req models.AttachPaymentInstrumentRequest) models.Dependency[models.Recommendation] {
	if s.fraudBreaker != nil && !s.fraudBreaker.Allow() {
		return models.Failed[models.Recommendation](errFraudCircuitOpen)
	}
	rec, err := s.fraud.EvaluateFraud(ctx, models.FraudRequest{
		SessionID: req.SessionID,
		AccountID: req.AccountID,
		Partner:   req.Partner,
		ClientIP:  req.ClientIP,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		if s.fraudBreaker != nil {
			if _, change := s.fraudBreaker.RecordFailure(); change.Opened {
				s.logger.WarnContext(ctx, "fraud evaluation circuit opened", "breaker", s.fraudBreaker.Name())
			}
		}
		return models.Failed[models.Recommendation](err)
	}
	if s.fraudBreaker != nil {
		if _, change := s.fraudBreaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "fraud evaluation circuit closed", "breaker", s.fraudBreaker.Name())
		}
	}
	return models.Resolved(rec)
}
